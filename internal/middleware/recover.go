package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/httpjson"
	"pet-marketplace/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer: mismo comportamiento, pero responde
// con el sobre JSON genérico y loguea el panic con nuestro logger.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", logger.Fields{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})
				httpjson.Fail(w, http.StatusInternalServerError, apperr.ErrInternal.Error())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
