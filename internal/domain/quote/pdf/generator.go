package pdf

import (
	"context"

	"freightquote/internal/domain/quote"
)

// Generator turns a submitted quote into PDF bytes.
type Generator interface {
	Generate(ctx context.Context, s quote.Submission) ([]byte, error)
}

// Magic is the signature every PDF document starts with.
const Magic = "%PDF-"

// IsPDF reports whether b looks like a PDF document.
func IsPDF(b []byte) bool {
	return len(b) >= len(Magic) && string(b[:len(Magic)]) == Magic
}
