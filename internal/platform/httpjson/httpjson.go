package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// ErrorResponse es el sobre de error común a todos los endpoints.
type ErrorResponse struct {
	Success bool                `json:"success" example:"false"`
	Message string              `json:"message" example:"validation failed"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail responde el sobre {success:false,message}.
func Fail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorResponse{Success: false, Message: msg})
}

// Decode lee el body JSON (limitado a 1MB). Campos desconocidos se ignoran,
// así un ownerId enviado por el cliente nunca llega al dominio.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// StatusFor traduce el Kind de un error de aplicación a status HTTP.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error escribe err como sobre de error. Los internos se loguean completos
// y al cliente solo le llega un mensaje genérico.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.Fields{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"err":        err,
		})
		Fail(w, status, apperr.ErrInternal.Error())
		return
	}

	resp := ErrorResponse{Success: false, Message: err.Error()}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		resp.Message = ae.Message
		resp.Errors = ae.Fields
	}
	Write(w, status, resp)
}
