package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/workflow"
)

func (h *Handlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	s := h.forms.add(func(id string) *workflow.Workflow {
		log := h.Log.With(zap.String("form_id", id))
		return workflow.New(quote.NewForm(), h.Generator,
			workflow.WithLogger(log),
			workflow.WithTimeout(h.Cfg.SubmitTimeout),
			workflow.OnTransition(func(from, to workflow.State) {
				log.Debug("quote submit: transition",
					zap.Stringer("from", from), zap.Stringer("to", to))
			}),
		)
	})
	h.Log.Info("forms: created",
		zap.String("form_id", s.id),
		zap.String("customer_id", s.wf.Form().CustomerID()),
		zap.Int("open", h.forms.len()))
	writeJSON(w, http.StatusCreated, viewOf(s))
}

func (h *Handlers) GetForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handlers) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := formID(r)
	if !h.forms.remove(id) {
		writeError(w, http.StatusNotFound, "form not found: "+id)
		return
	}
	h.Log.Info("forms: deleted", zap.String("form_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdateFields(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var values map[string]string
	if err := decodeJSON(w, r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if err := s.wf.Form().SetFields(values); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.wf.Form().AddItem()
	writeJSON(w, http.StatusCreated, viewOf(s))
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	idx, err := itemIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad item index")
		return
	}
	var patch quote.ItemPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if _, err := s.wf.Form().UpdateItem(idx, patch); err != nil {
		writeItemError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	idx, err := itemIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad item index")
		return
	}
	if err := s.wf.Form().RemoveItem(idx); err != nil {
		writeItemError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

type moveRequest struct {
	To *int `json:"to"`
}

func (h *Handlers) MoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	idx, err := itemIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad item index")
		return
	}
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil || req.To == nil {
		writeError(w, http.StatusBadRequest, `bad request: expected {"to": n}`)
		return
	}
	if err := s.wf.Form().MoveItem(idx, *req.To); err != nil {
		writeItemError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func writeItemError(w http.ResponseWriter, err error) {
	if errors.Is(err, quote.ErrItemIndex) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
