// Package dates converts between time values and the two date conventions the
// spreadsheet uses: the Spanish long month ("diciembre de 2025") that keys the
// Dashboard and Patrimonio rows, and day-level dates ("2 de diciembre de 2025"
// or DD/MM/YYYY) in the Gastos tab.
//
// The month-key strings are the row's primary key at the storage boundary:
// lookups are exact string matches, so formatting and parsing must round-trip
// byte for byte. Calendar arithmetic happens on the parsed time.Time form,
// never on the strings.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"finanzas/internal/core"
)

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

const separator = " de "

// ParseMonthKey parses "<mes> de <año>" (case-insensitive month name) into a
// UTC time at day 1 of that month.
func ParseMonthKey(s string) (time.Time, error) {
	parts := strings.Split(s, separator)
	if len(parts) != 2 {
		return time.Time{}, core.NewFormatError(s, "se esperaba \"mes de año\"")
	}
	month, ok := monthIndex(parts[0])
	if !ok {
		return time.Time{}, core.NewFormatError(s, "mes no reconocido")
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, core.NewFormatError(s, "año no numérico")
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// FormatMonthKey is the inverse of ParseMonthKey, using the UTC fields of t.
func FormatMonthKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s de %d", monthNames[u.Month()-1], u.Year())
}

// ParseDayKey parses either "<día> de <mes> de <año>" or "DD/MM/YYYY" into a
// UTC time. Two-digit years mean 2000+.
func ParseDayKey(s string) (time.Time, error) {
	if strings.Contains(s, "/") {
		return parseSlashDate(s)
	}
	parts := strings.Split(s, separator)
	if len(parts) != 3 {
		return time.Time{}, core.NewFormatError(s, "se esperaba \"día de mes de año\"")
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, core.NewFormatError(s, "día fuera de rango")
	}
	month, ok := monthIndex(parts[1])
	if !ok {
		return time.Time{}, core.NewFormatError(s, "mes no reconocido")
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, core.NewFormatError(s, "año no numérico")
	}
	return time.Date(normalizeYear(year), month, day, 0, 0, 0, 0, time.UTC), nil
}

// FormatDayKey formats t as zero-padded DD/MM/YYYY from its UTC fields.
func FormatDayKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%02d/%02d/%04d", u.Day(), int(u.Month()), u.Year())
}

func parseSlashDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, core.NewFormatError(s, "se esperaba DD/MM/YYYY")
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, core.NewFormatError(s, "día fuera de rango")
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, core.NewFormatError(s, "mes fuera de rango")
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, core.NewFormatError(s, "año no numérico")
	}
	return time.Date(normalizeYear(year), time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func monthIndex(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, m := range monthNames {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func normalizeYear(year int) int {
	if year >= 0 && year < 100 {
		return year + 2000
	}
	return year
}
