package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"finanzas/internal/core"
)

const maxBodyBytes = 1 << 20

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseMonth reads the YYYY-MM keys the API uses for month selection. An
// empty value means the caller wants the running month.
func parseMonth(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	month, err := time.ParseInLocation("2006-01", value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return month, true
}

const monthFormatMessage = "el mes debe tener el formato AAAA-MM"

// settingsRequest carries the editable dashboard columns, amounts in euros.
// Month is optional and defaults to the running month.
type settingsRequest struct {
	Month            string  `json:"month"`
	Income           float64 `json:"income"`
	SavingTarget     float64 `json:"savingTarget"`
	InvestmentTarget float64 `json:"investmentTarget"`
}

func (req settingsRequest) validate() (time.Time, map[string]string) {
	fields := make(map[string]string)
	month, ok := parseMonth(req.Month)
	if !ok {
		fields["month"] = monthFormatMessage
	}
	if req.Income <= 0 {
		fields["income"] = "los ingresos deben ser mayores que cero"
	}
	if req.SavingTarget < 0 {
		fields["savingTarget"] = "el objetivo de ahorro no puede ser negativo"
	}
	if req.InvestmentTarget < 0 {
		fields["investmentTarget"] = "el objetivo de inversión no puede ser negativo"
	}
	if len(fields) == 0 {
		return month, nil
	}
	return time.Time{}, fields
}

// transactionRequest is one expense movement. The date arrives as YYYY-MM-DD.
type transactionRequest struct {
	CollectionDate string  `json:"collectionDate"`
	Concept        string  `json:"concept"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
}

func (req transactionRequest) validate() (core.Transaction, map[string]string) {
	fields := make(map[string]string)

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.CollectionDate), time.UTC)
	if err != nil {
		fields["collectionDate"] = "la fecha debe tener el formato AAAA-MM-DD"
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		fields["concept"] = "el concepto es obligatorio"
	} else if utf8.RuneCountInString(concept) > 200 {
		fields["concept"] = "el concepto no puede superar 200 caracteres"
	}

	if req.Amount <= 0 {
		fields["amount"] = "el importe debe ser mayor que cero"
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		fields["category"] = "la categoría es obligatoria"
	}

	if len(fields) > 0 {
		return core.Transaction{}, fields
	}

	return core.Transaction{
		CollectionDate: date,
		Concept:        concept,
		Amount:         core.MoneyFromEuros(req.Amount),
		Category:       category,
	}, nil
}

// netWorthRequest carries the two editable patrimony columns in euros.
// Month is optional and defaults to the running month.
type netWorthRequest struct {
	Month       string  `json:"month"`
	CashSavings float64 `json:"cashSavings"`
	Invested    float64 `json:"investedAmount"`
}

func (req netWorthRequest) validate() (time.Time, map[string]string) {
	fields := make(map[string]string)
	month, ok := parseMonth(req.Month)
	if !ok {
		fields["month"] = monthFormatMessage
	}
	if req.CashSavings < 0 {
		fields["cashSavings"] = "el ahorro no puede ser negativo"
	}
	if req.Invested < 0 {
		fields["investedAmount"] = "la inversión no puede ser negativa"
	}
	if len(fields) == 0 {
		return month, nil
	}
	return time.Time{}, fields
}
