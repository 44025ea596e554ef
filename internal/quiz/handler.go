package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"vocabquiz/internal/app/apiresp"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc          quizService
	defaultCount CountResolver
}

type quizService interface {
	Start(ctx context.Context, count Count) (*View, error)
	Get(ctx context.Context, id string) (*View, error)
	Grade(ctx context.Context, in GradeInput) (*Result, error)
	RetryWrong(ctx context.Context, id string) (*View, error)
	Regenerate(ctx context.Context, id string, count Count) (*View, error)
}

// CountResolver supplies the count to use when a request omits one, usually
// from the caller's saved settings.
type CountResolver func(r *http.Request) Count

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type countRequest struct {
	Count *Count `json:"count"`
}

type gradeRequest struct {
	Round   int      `json:"round"`
	Answers []string `json:"answers"`
}

func NewHandler(svc quizService, resolve CountResolver) *Handler {
	if resolve == nil {
		resolve = func(*http.Request) Count { return ParseCount(DefaultCount) }
	}
	return &Handler{svc: svc, defaultCount: resolve}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	count, ok := h.decodeCount(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Start(r.Context(), count)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, apiResponse{OK: true, Data: view})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: view})
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, apiResponse{OK: false, Error: "invalid request body"})
		return
	}
	res, err := h.svc.Grade(r.Context(), GradeInput{
		SessionID: chi.URLParam(r, "id"),
		Round:     req.Round,
		Answers:   req.Answers,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: res})
}

func (h *Handler) RetryWrong(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.RetryWrong(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: view})
}

func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	count, ok := h.decodeCount(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Regenerate(r.Context(), chi.URLParam(r, "id"), count)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: view})
}

// decodeCount reads an optional {"count": ...} body. An empty body falls
// back to the resolver.
func (h *Handler) decodeCount(w http.ResponseWriter, r *http.Request) (Count, bool) {
	var req countRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, r, http.StatusBadRequest, apiResponse{OK: false, Error: "invalid request body"})
			return Count{}, false
		}
	}
	if req.Count != nil {
		return *req.Count, true
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		return ParseCount(raw), true
	}
	return h.defaultCount(r), true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiresp.WriteServiceError(w, r, err,
		apiresp.On(ErrSessionNotFound, http.StatusNotFound),
		apiresp.On(ErrBusy, http.StatusConflict),
		apiresp.On(ErrNothingToRetry, http.StatusConflict),
		apiresp.On(ErrStaleRound, http.StatusConflict),
		apiresp.On(ErrInvalidInput, http.StatusBadRequest),
	)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload apiResponse) {
	if payload.OK {
		apiresp.WriteOK(w, r, code, payload.Data)
		return
	}
	apiresp.WriteError(w, r, code, payload.Error)
}
