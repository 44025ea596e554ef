package changelog

import (
	"log"
	"net/http"

	"vocabquiz/internal/app/apiresp"
)

type Handler struct {
	path string
}

func NewHandler(path string) *Handler {
	return &Handler{path: path}
}

// Get re-reads the file on every request.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := Load(h.path)
	if err != nil {
		log.Printf("changelog error: %v", err)
		apiresp.WriteError(w, r, http.StatusBadGateway, LoadFailedMessage)
		return
	}
	apiresp.WriteOK(w, r, http.StatusOK, l)
}
