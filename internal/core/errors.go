package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMonthNotFound signals that no row exists for the requested month key.
	ErrMonthNotFound = errors.New("mes no encontrado")

	// ErrNoData signals that a sheet tab has no data rows at all.
	ErrNoData = errors.New("no se encontraron datos en la hoja")

	ErrInvalidAmount = errors.New("importe inválido")
	ErrEmptyConcept  = errors.New("concepto vacío")
	ErrEmptyCategory = errors.New("categoría vacía")
)

// FormatError reports malformed date or number text found in a sheet cell.
// Single-row readers let it propagate; list readers drop the offending row.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formato inválido %q: %s", e.Value, e.Reason)
}

// NewFormatError builds a FormatError for the given cell text.
func NewFormatError(value, reason string) *FormatError {
	return &FormatError{Value: value, Reason: reason}
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
