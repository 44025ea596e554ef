package apiresp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

type Envelope struct {
	OK    bool          `json:"ok"`
	Data  interface{}   `json:"data,omitempty"`
	Error *ErrorPayload `json:"error,omitempty"`
	Meta  Meta          `json:"meta"`
}

func WriteOK(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	WriteLegacy(w, r, status, true, data, "")
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteLegacy(w, r, status, false, nil, msg)
}

// Rule maps a sentinel error to a status. The error text is sent as the message.
type Rule struct {
	Err    error
	Status int
}

func On(err error, status int) Rule {
	return Rule{Err: err, Status: status}
}

// SourceError is implemented by failures to read the upstream question data.
// SourceUnavailable is the message shown to users instead of the cause.
type SourceError interface {
	error
	SourceUnavailable() string
}

// WriteServiceError picks the first matching rule. Unmatched errors are
// logged; source failures become 502 and everything else 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, rules ...Rule) {
	for _, rule := range rules {
		if errors.Is(err, rule.Err) {
			WriteError(w, r, rule.Status, err.Error())
			return
		}
	}
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	var se SourceError
	if errors.As(err, &se) {
		WriteError(w, r, http.StatusBadGateway, se.SourceUnavailable())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "internal error")
}

func WriteLegacy(w http.ResponseWriter, r *http.Request, status int, ok bool, data interface{}, errMsg string) {
	res := Envelope{
		OK: ok,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
		},
	}
	if ok {
		res.Data = data
	} else {
		if errMsg == "" {
			errMsg = http.StatusText(status)
		}
		res.Error = &ErrorPayload{
			Code:    codeFromStatus(status),
			Message: errMsg,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusInternalServerError:
		return "internal_error"
	case http.StatusBadGateway:
		return "source_unavailable"
	default:
		if status >= 200 && status < 300 {
			return ""
		}
		return "error"
	}
}
