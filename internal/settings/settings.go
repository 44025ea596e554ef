// Package settings persists small per-client preference blobs.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"regexp"
	"strconv"
)

// BaseKey is the well-known key all preferences live under.
const BaseKey = "jhs_settings"

var ErrInvalidKey = errors.New("invalid settings key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-:]{1,128}$`)

// Settings is the decoded blob. Unknown keys are preserved on save.
type Settings map[string]any

// Store reads and writes raw blobs. A missing key is reported with ok=false.
type Store interface {
	Get(ctx context.Context, key string) (blob string, ok bool, err error)
	Put(ctx context.Context, key, blob string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// KeyFor scopes BaseKey to one anonymous client.
func KeyFor(clientID string) string {
	if clientID == "" {
		return BaseKey
	}
	return BaseKey + ":" + clientID
}

func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Load returns the stored settings. Missing or malformed blobs yield an
// empty mapping; only store failures are returned.
func (s *Service) Load(ctx context.Context, key string) (Settings, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	blob, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get settings %s: %w", key, err)
	}
	if !ok || blob == "" {
		return Settings{}, nil
	}
	return decode(key, blob), nil
}

// Merge overlays patch on the stored settings and rewrites the whole blob.
func (s *Service) Merge(ctx context.Context, key string, patch Settings) (Settings, error) {
	cur, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	maps.Copy(cur, patch)
	b, err := json.Marshal(cur)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Put(ctx, key, string(b)); err != nil {
		return nil, fmt.Errorf("put settings %s: %w", key, err)
	}
	return cur, nil
}

// String returns the first set value among keys rendered as text. Empty
// strings, zero and booleans count as unset, so callers fall back to their
// default.
func (s Settings) String(keys ...string) string {
	for _, k := range keys {
		switch v := s[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return ""
}

func decode(key, blob string) Settings {
	var out Settings
	if err := json.Unmarshal([]byte(blob), &out); err != nil || out == nil {
		log.Printf("settings %s: discarding unreadable blob: %v", key, err)
		return Settings{}
	}
	return out
}
