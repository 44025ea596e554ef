// Package changelog reads the update history shown on the history page.
package changelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFailedMessage is shown when the history cannot be read.
const LoadFailedMessage = "could not load update history"

var ErrUnsupportedFormat = errors.New("unsupported changelog format")

type Entry struct {
	Version string   `json:"version" yaml:"version"`
	Date    string   `json:"date,omitempty" yaml:"date,omitempty"`
	Changes []string `json:"changes,omitempty" yaml:"changes,omitempty"`
	Fixes   []string `json:"fixes,omitempty" yaml:"fixes,omitempty"`
}

type Log struct {
	Latest string  `json:"latest" yaml:"latest"`
	Items  []Entry `json:"items" yaml:"items"`
}

// Load reads a JSON or YAML changelog, picked by file extension.
func Load(path string) (*Log, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read changelog: %w", err)
	}
	return Decode(filepath.Ext(path), b)
}

func Decode(ext string, b []byte) (*Log, error) {
	var out Log
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode changelog json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode changelog yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if out.Items == nil {
		out.Items = []Entry{}
	}
	return &out, nil
}
