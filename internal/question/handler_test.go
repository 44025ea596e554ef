package question

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockBank struct {
	snapshotFn func(ctx context.Context) ([]Record, error)
	reloadFn   func(ctx context.Context) ([]Record, error)
	stats      BankStats
}

func (m *mockBank) Snapshot(ctx context.Context) ([]Record, error) {
	if m.snapshotFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.snapshotFn(ctx)
}

func (m *mockBank) Reload(ctx context.Context) ([]Record, error) {
	if m.reloadFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.reloadFn(ctx)
}

func (m *mockBank) Stats() BankStats { return m.stats }

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return env
}

func TestHandlerListOK(t *testing.T) {
	h := NewHandler(&mockBank{
		snapshotFn: func(ctx context.Context) ([]Record, error) {
			return []Record{{"id": "1", "prompt": "p", "answer": "a"}}, nil
		},
		stats: BankStats{Source: "data/teacher.csv", Count: 1, LoadedAt: time.Now()},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	var data listResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !env.OK || len(data.Items) != 1 || data.Stats.Count != 1 {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestHandlerListLoadError(t *testing.T) {
	h := NewHandler(&mockBank{
		snapshotFn: func(ctx context.Context) ([]Record, error) {
			return nil, &LoadError{Source: "x", StatusCode: http.StatusNotFound}
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.OK || env.Error == nil || env.Error.Message != LoadFailedMessage {
		t.Fatalf("unexpected error payload: %s", w.Body.String())
	}
}

func TestHandlerReload(t *testing.T) {
	reloaded := false
	h := NewHandler(&mockBank{
		reloadFn: func(ctx context.Context) ([]Record, error) {
			reloaded = true
			return nil, nil
		},
		stats: BankStats{Source: "data/teacher.csv", Count: 12},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	w := httptest.NewRecorder()
	h.Reload(w, req)

	if w.Code != http.StatusOK || !reloaded {
		t.Fatalf("expected reload with 200, got %d reloaded=%v", w.Code, reloaded)
	}
}

func TestHandlerReloadUnexpectedError(t *testing.T) {
	h := NewHandler(&mockBank{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	w := httptest.NewRecorder()
	h.Reload(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
