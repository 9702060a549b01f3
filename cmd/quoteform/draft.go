package main

import (
	"encoding/json"
	"fmt"
	"os"

	"freightquote/internal/domain/quote"
)

// draft is a quote saved as JSON:
//
//	{"fields": {"from": "Shanghai", ...}, "items": [{"description": "THC", "quantity": 1, "price": 180}]}
//
// A draft without items keeps the default rows. customerId is ignored; the
// form generates its own.
type draft struct {
	Fields map[string]string `json:"fields"`
	Items  []quote.ItemInput `json:"items"`
}

func loadDraft(path string) (draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return draft{}, fmt.Errorf("read draft: %w", err)
	}
	var d draft
	if err := json.Unmarshal(data, &d); err != nil {
		return draft{}, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return d, nil
}

// apply copies the draft into f.
func (d draft) apply(f *quote.Form) error {
	fields := make(map[string]string, len(d.Fields))
	for k, v := range d.Fields {
		if k != "customerId" {
			fields[k] = v
		}
	}
	if err := f.SetFields(fields); err != nil {
		return fmt.Errorf("draft fields: %w", err)
	}
	if d.Items != nil {
		f.ReplaceItems(d.Items)
	}
	return nil
}
