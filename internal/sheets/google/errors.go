package google

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// APIError is an upstream Sheets API failure classified into an HTTP status
// and a user-facing Spanish message.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Classify maps an upstream error to an APIError. Typed googleapi errors are
// matched by code first; everything else falls back to best-effort substring
// matching on the message, the way the original service classified them.
func Classify(err error) *APIError {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 403:
			return &APIError{Status: 403, Message: "Acceso prohibido a la hoja de cálculo. Verifica las credenciales y los permisos de la cuenta de servicio.", Err: err}
		case 404:
			return &APIError{Status: 404, Message: "No se encontró la hoja de cálculo. Verifica que el identificador sea correcto.", Err: err}
		case 401:
			return &APIError{Status: 401, Message: "Error de autenticación. Las credenciales de Google Sheets pueden haber expirado o ser inválidas.", Err: err}
		case 429:
			return &APIError{Status: 429, Message: "Se ha excedido el límite de solicitudes de la API de Google Sheets. Intenta de nuevo más tarde.", Err: err}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission") || strings.Contains(msg, "forbidden"):
		return &APIError{Status: 403, Message: "No tienes permisos para acceder a esta hoja de cálculo.", Err: err}
	case strings.Contains(msg, "not found"):
		return &APIError{Status: 404, Message: "No se encontró la hoja de cálculo.", Err: err}
	case strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "authentication"):
		return &APIError{Status: 401, Message: "Error de autenticación con Google Sheets.", Err: err}
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return &APIError{Status: 429, Message: "Límite de solicitudes excedido.", Err: err}
	}
	return &APIError{Status: 500, Message: "Error de Google Sheets", Err: err}
}
