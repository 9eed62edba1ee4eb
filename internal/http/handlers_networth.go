package http

import (
	"net/http"

	"finanzas/internal/core"
)

func (s *Server) handleNetWorthHistory(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.NetWorthView(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	listCacheHeaders(w)
	writeJSON(w, http.StatusOK, toNetWorthHistoryResponse(view))
}

func (s *Server) handleSaveNetWorth(w http.ResponseWriter, r *http.Request) {
	var req netWorthRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de petición inválido", err)
		return
	}

	month, fields := req.validate()
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	nw, err := s.svc.SaveNetWorth(r.Context(), month,
		core.MoneyFromEuros(req.CashSavings),
		core.MoneyFromEuros(req.Invested))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNetWorthResponse(nw))
}
