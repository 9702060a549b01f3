package handlers

import (
	"net/http"

	"freightquote/internal/domain/quote"
)

type optionsResponse struct {
	quote.Catalog
	Terms []string `json:"terms"`
}

func (h *Handlers) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Catalog: quote.DefaultCatalog(),
		Terms:   quote.Terms(),
	})
}
