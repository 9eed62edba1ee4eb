package http

import (
	"net/http"

	"finanzas/internal/core"
	"finanzas/internal/services"
)

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	month, ok := parseMonth(r.URL.Query().Get("month"))
	if !ok {
		writeFieldErrors(w, map[string]string{"month": monthFormatMessage})
		return
	}

	var (
		view services.DashboardView
		err  error
	)
	if month.IsZero() {
		view, err = s.svc.CurrentDashboard(r.Context())
	} else {
		view, err = s.svc.DashboardForMonth(r.Context(), month)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	listCacheHeaders(w)
	writeJSON(w, http.StatusOK, toDashboardResponse(view))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de petición inválido", err)
		return
	}

	month, fields := req.validate()
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	dash, err := s.svc.UpdateMonthlySettings(r.Context(), month,
		core.MoneyFromEuros(req.Income),
		core.MoneyFromEuros(req.SavingTarget),
		core.MoneyFromEuros(req.InvestmentTarget))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(dash))
}
