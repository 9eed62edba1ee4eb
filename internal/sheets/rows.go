package sheets

import (
	"fmt"
	"strings"
)

// Spreadsheet error markers that can leak into cells when a formula breaks.
var errorSentinels = []string{"#REF!", "#N/A", "#ERROR!"}

// IsValidRow reports whether a raw sheet row is worth mapping: it must be
// non-empty, contain at least one non-blank cell, and its first cell must not
// start with a spreadsheet error sentinel.
func IsValidRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return false
	}
	first := strings.TrimSpace(cells[0])
	for _, sentinel := range errorSentinels {
		if strings.HasPrefix(first, sentinel) {
			return false
		}
	}
	return true
}

// CellStrings converts an interface row as returned by the Sheets API into
// trimmed strings.
func CellStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// CellAt returns the idx-th cell or "" when the row is shorter.
func CellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
