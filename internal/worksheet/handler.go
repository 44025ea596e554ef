package worksheet

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"vocabquiz/internal/app/apiresp"
	"vocabquiz/internal/quiz"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc          worksheetService
	defaultCount quiz.CountResolver
}

type worksheetService interface {
	Generate(ctx context.Context, in GenerateInput) (*Sheet, error)
}

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func NewHandler(svc worksheetService, resolve quiz.CountResolver) *Handler {
	if resolve == nil {
		resolve = func(*http.Request) quiz.Count { return quiz.ParseCount(quiz.DefaultCount) }
	}
	return &Handler{svc: svc, defaultCount: resolve}
}

// InputFromRequest reads count, mode, answers and seed query parameters.
func (h *Handler) InputFromRequest(r *http.Request) GenerateInput {
	q := r.URL.Query()
	count := h.defaultCount(r)
	if raw := strings.TrimSpace(q.Get("count")); raw != "" {
		count = quiz.ParseCount(raw)
	}
	return GenerateInput{
		Count:       count,
		Mode:        ParseMode(q.Get("mode")),
		ShowAnswers: q.Get("answers") == "1" || q.Get("answers") == "true",
		Seed:        ParseSeed(q.Get("seed")),
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.svc.Generate(r.Context(), h.InputFromRequest(r))
	if err != nil {
		apiresp.WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: sheet})
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.svc.Generate(r.Context(), h.InputFromRequest(r))
	if err != nil {
		apiresp.WriteServiceError(w, r, err)
		return
	}
	b, err := ExportXLSX(sheet)
	if err != nil {
		log.Printf("worksheet export error: %v", err)
		writeJSON(w, r, http.StatusInternalServerError, apiResponse{OK: false, Error: "failed to export worksheet"})
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="worksheet-%s.xlsx"`, sheet.SeedString()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload apiResponse) {
	if payload.OK {
		apiresp.WriteOK(w, r, code, payload.Data)
		return
	}
	apiresp.WriteError(w, r, code, payload.Error)
}
