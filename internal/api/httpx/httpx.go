// Package httpx writes the response envelope every endpoint shares:
// {"status": <code>, "message": <text>, "data": <payload>}.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawcat-app/pawcat-backend/internal/services"
)

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func Respond(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = []any{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Status: status, Message: message, Data: data})
}

// Error maps the service taxonomy onto status codes. Anything unrecognized is
// a generic 500 with no internal detail.
func Error(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		var data any
		if len(vErr.Fields) > 0 {
			data = vErr.Fields
		}
		msg := vErr.Msg
		if msg == "" {
			msg = "Invalid data"
		}
		Respond(w, http.StatusBadRequest, msg, data)
	case errors.Is(err, services.ErrNotFound):
		Respond(w, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		Respond(w, http.StatusBadRequest, "Invalid credentials", nil)
	case errors.Is(err, services.ErrUnauthorized):
		Respond(w, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, services.ErrForbidden):
		Respond(w, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, services.ErrRateLimited):
		Respond(w, http.StatusTooManyRequests, "Too many attempts. Try again later.", nil)
	default:
		Respond(w, http.StatusInternalServerError, "Internal error", nil)
	}
}
