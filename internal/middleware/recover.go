package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "path", r.URL.Path)
				httpx.Respond(w, http.StatusInternalServerError, "Internal error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
