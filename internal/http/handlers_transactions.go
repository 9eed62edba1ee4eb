package http

import (
	"net/http"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Transactions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	listCacheHeaders(w)
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de petición inválido", err)
		return
	}

	tx, fields := req.validate()
	if fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	saved, err := s.svc.AddTransaction(r.Context(), tx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(saved))
}
