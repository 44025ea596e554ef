package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"vocabquiz/internal/app/apiresp"

	"github.com/google/uuid"
)

// ClientCookie names the anonymous id that scopes a browser's settings.
const ClientCookie = "vq_client"

type Handler struct {
	svc settingsService
}

type settingsService interface {
	Load(ctx context.Context, key string) (Settings, error)
	Merge(ctx context.Context, key string, patch Settings) (Settings, error)
}

type apiResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func NewHandler(svc settingsService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Load(r.Context(), KeyFor(ClientID(w, r)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: s})
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var patch Settings
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
		writeJSON(w, r, http.StatusBadRequest, apiResponse{OK: false, Error: "invalid request body"})
		return
	}
	s, err := h.svc.Merge(r.Context(), KeyFor(ClientID(w, r)), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, apiResponse{OK: true, Data: s})
}

// ClientIDFromRequest reads the anonymous id without issuing one.
func ClientIDFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(ClientCookie)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// ClientID returns the caller's anonymous id, issuing a new cookie when the
// request has none or carries a malformed one.
func ClientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := ClientIDFromRequest(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
	return id
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiresp.WriteServiceError(w, r, err, apiresp.On(ErrInvalidKey, http.StatusBadRequest))
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload apiResponse) {
	if payload.OK {
		apiresp.WriteOK(w, r, code, payload.Data)
		return
	}
	apiresp.WriteError(w, r, code, payload.Error)
}
