package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"freightquote/internal/app/config"
	"freightquote/internal/domain/quote/pdf"
)

type Handlers struct {
	Cfg       config.Config
	Log       *zap.Logger
	Generator pdf.Generator
	forms     *formStore
}

func New(cfg config.Config, gen pdf.Generator, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Cfg:       cfg,
		Log:       logger,
		Generator: gen,
		forms:     newFormStore(cfg.FormTTL),
	}
}

// session resolves {formID} or answers 404.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := formID(r)
	s, ok := h.forms.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found: "+id)
		return nil, false
	}
	return s, true
}
