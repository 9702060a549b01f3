package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/workflow"
)

type errorResponse struct {
	Error string `json:"error"`
}

// formView is the JSON shape of an open form.
type formView struct {
	ID      string         `json:"id"`
	State   workflow.State `json:"state"`
	Loading bool           `json:"loading"`
	quote.Snapshot
}

func viewOf(s *session) formView {
	return formView{
		ID:       s.id,
		State:    s.wf.State(),
		Loading:  s.wf.Loading(),
		Snapshot: s.wf.Form().Snapshot(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func formID(r *http.Request) string {
	return chi.URLParam(r, "formID")
}

func itemIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
