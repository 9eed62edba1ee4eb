// Package core holds the finance domain: entities, money parsing and the
// derived-value calculators.
//
// This file contains the money parsing helpers. Sheet cells store amounts as
// human-authored text with either a decimal comma (12,34) or a decimal dot
// (12.34); everything is normalized to integer cents.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. It accepts both comma and dot decimal
// separators. Only strictly positive amounts are accepted; it is meant for
// validating user input, not for reading sheet cells (see ParseSheetAmount).
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// ParseSheetAmount reads a numeric sheet cell into Money. Unlike
// ParseDecimalToCents it tolerates negative and zero values (computed columns
// such as DINERO LIBRE can go below zero), a trailing euro sign, and the
// decimal comma. An empty cell parses as zero.
func ParseSheetAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Money{}, NewFormatError(s, "importe no numérico")
	}
	return MoneyFromEuros(f), nil
}

// MoneyFromEuros converts a euro amount to cents with half-up rounding.
func MoneyFromEuros(euros float64) Money {
	if euros < 0 {
		return Money{Cents: -int64(-euros*100.0 + 0.5)}
	}
	return Money{Cents: int64(euros*100.0 + 0.5)}
}

// Euros returns the euro value as a float64 for display and JSON output.
// Use cents for arithmetic.
func (m Money) Euros() float64 {
	return float64(m.Cents) / 100.0
}
