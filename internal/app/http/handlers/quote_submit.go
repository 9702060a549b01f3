package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/workflow"
)

type submitRequest struct {
	Decision string `json:"decision"`
}

// responseUI answers the workflow for one HTTP request. The decision is
// taken from the request body and the PDF is held until the workflow
// returns.
type responseUI struct {
	workflow.Recorder
	decision workflow.Decision
	name     string
	pdf      []byte
}

func (u *responseUI) Confirm(ctx context.Context, p workflow.Prompt) (workflow.Decision, error) {
	return u.decision, nil
}

func (u *responseUI) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.name = name
	u.pdf = data
	return nil
}

func (h *Handlers) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	decision, ok := workflow.ParseDecision(req.Decision)
	if !ok {
		writeError(w, http.StatusBadRequest, "decision must be accept, reject or cancel")
		return
	}

	ui := &responseUI{decision: decision}
	outcome, err := s.wf.Submit(r.Context(), ui)
	if errors.Is(err, workflow.ErrSubmitInProgress) {
		h.setToasts(w, []workflow.Notification{{
			Severity: workflow.SeverityWarn,
			Summary:  "Busy",
			Detail:   "A submission of this form is already in progress",
		}})
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.setToasts(w, ui.Notifications())

	switch outcome {
	case workflow.OutcomeSucceeded:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+quote.PDFFilename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(ui.pdf)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(ui.pdf); err != nil {
			h.Log.Warn("quote submit: write pdf", zap.String("form_id", s.id), zap.Error(err))
		}
	case workflow.OutcomeInvalid:
		writeJSON(w, http.StatusUnprocessableEntity, viewOf(s))
	case workflow.OutcomeFailed:
		writeJSON(w, http.StatusBadGateway, viewOf(s))
	default:
		writeJSON(w, http.StatusOK, viewOf(s))
	}
}
