package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/sheets/google"
)

// errorResponse is the uniform error body: a user-facing message plus the
// technical detail.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// fieldErrorResponse carries per-field validation failures. Each field maps
// to the list of messages the client should show next to it.
type fieldErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("fallo escribiendo la respuesta", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, errorResponse{Message: message, Error: detail})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	errs := make(map[string][]string, len(fields))
	for field, msg := range fields {
		errs[field] = []string{msg}
	}
	writeJSON(w, http.StatusBadRequest, fieldErrorResponse{Errors: errs})
}

// listCacheHeaders marks read endpoints as cacheable by a fronting CDN.
func listCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "public, s-maxage=60, stale-while-revalidate=300")
}

// statusFor translates domain and upstream errors into HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrMonthNotFound):
		return http.StatusNotFound, "Mes no encontrado en la hoja"
	case errors.Is(err, core.ErrNoData):
		return http.StatusNotFound, "No se encontraron datos en la hoja"
	case core.IsFormatError(err),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyConcept),
		errors.Is(err, core.ErrEmptyCategory):
		return http.StatusBadRequest, "Datos inválidos"
	}

	var apiErr *google.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}
	if classified := google.Classify(err); classified.Status != http.StatusInternalServerError {
		return classified.Status, classified.Message
	}

	return http.StatusInternalServerError, "Error interno del servidor"
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	writeError(w, status, message, err)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
