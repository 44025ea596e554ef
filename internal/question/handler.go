package question

import (
	"context"
	"log"
	"net/http"

	"vocabquiz/internal/app/apiresp"
)

// LoadFailedMessage is what users see when the question source is unavailable.
const LoadFailedMessage = "failed to load the question CSV; check the file name and path"

type Handler struct {
	bank bankService
}

type bankService interface {
	Snapshot(ctx context.Context) ([]Record, error)
	Reload(ctx context.Context) ([]Record, error)
	Stats() BankStats
}

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type listResponse struct {
	Stats BankStats `json:"stats"`
	Items []Record  `json:"items"`
}

func NewHandler(bank bankService) *Handler {
	return &Handler{bank: bank}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.bank.Snapshot(r.Context())
	if err != nil {
		apiresp.WriteServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: listResponse{Stats: h.bank.Stats(), Items: items}})
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if _, err := h.bank.Reload(r.Context()); err != nil {
		apiresp.WriteServiceError(w, r, err)
		return
	}
	stats := h.bank.Stats()
	log.Printf("question bank reloaded from %s: %d records", stats.Source, stats.Count)
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: stats})
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload apiResponse) {
	if payload.OK {
		apiresp.WriteOK(w, r, code, payload.Data)
		return
	}
	apiresp.WriteError(w, r, code, payload.Error)
}
