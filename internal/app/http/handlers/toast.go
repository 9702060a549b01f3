package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"freightquote/internal/domain/quote/workflow"
)

// setToasts puts the notifications of a submission into the HX-Trigger
// header. showToast carries the last one; toasts carries all of them in
// order. Existing HX-Trigger keys are kept.
func (h *Handlers) setToasts(w http.ResponseWriter, notes []workflow.Notification) {
	if len(notes) == 0 {
		return
	}
	trigger := map[string]any{}
	if existing := w.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			h.Log.Warn("toast: existing HX-Trigger is not valid JSON, overwriting", zap.Error(err))
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = notes[len(notes)-1]
	trigger["toasts"] = notes

	data, err := json.Marshal(trigger)
	if err != nil {
		h.Log.Error("toast: marshal HX-Trigger", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger", string(data))
}
