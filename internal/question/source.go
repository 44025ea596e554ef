package question

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const maxSourceBytes = 32 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source produces the raw table for a question bank.
type Source interface {
	Name() string
	Table(ctx context.Context) (RawTable, error)
}

// NewSource picks a source by location: http(s) URLs are fetched, .xlsx
// files are read as workbooks and anything else is a local CSV file.
func NewSource(location string, client *http.Client) Source {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTPSource(location, client)
	case strings.EqualFold(filepath.Ext(location), ".xlsx"):
		return XLSXSource{Path: location}
	default:
		return FileSource{Path: location}
	}
}

type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Table(ctx context.Context) (RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Source: s.Path, StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	return ParseTable(decodeText(b)), nil
}

type HTTPSource struct {
	URL    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return HTTPSource{URL: url, client: client}
}

func (s HTTPSource) Name() string { return s.URL }

// Table fetches the CSV once. Non-2xx responses are returned as a LoadError
// carrying the status; there is no retry.
func (s HTTPSource) Table(ctx context.Context) (RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &LoadError{
			Source:     s.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	return ParseTable(decodeText(raw)), nil
}

// XLSXSource reads the first sheet of a workbook. Rows go through the same
// blank-row filter as CSV text.
type XLSXSource struct {
	Path string
}

func (s XLSXSource) Name() string { return s.Path }

func (s XLSXSource) Table(ctx context.Context) (RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Source: s.Path, StatusCode: http.StatusNotFound, Err: err}
		}
		return nil, &LoadError{Source: s.Path, Err: fmt.Errorf("open excel: %w", err)}
	}
	defer func() { _ = f.Close() }()
	return tableFromWorkbook(s.Path, f)
}

func tableFromWorkbook(name string, f *excelize.File) (RawTable, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Source: name, Err: ErrEmptySource}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("read rows: %w", err)}
	}
	return dropBlankRows(RawTable(rows)), nil
}

// decodeText drops a leading UTF-8 byte order mark, which spreadsheet
// exports commonly add.
func decodeText(b []byte) string {
	return string(bytes.TrimPrefix(b, utf8BOM))
}
