// Package pdftest provides a stand-in for the external quote renderer. It
// accepts submissions like the real endpoint and answers with a small PDF
// drawn by gofpdf, so callers can be exercised end to end without the
// rendering service.
package pdftest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"

	"freightquote/internal/domain/quote"
)

// Render draws the submission as a one page A4 quote.
func Render(s quote.Submission) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Freight Quotation", false)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Freight Quotation")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, tr(fmt.Sprintf("Customer: %s (%s)  Date: %s", s.Customer, s.CustomerID, s.Date)))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("%s -> %s  %s  %s", s.From, s.To, s.Incoterms, s.Unit)))
	doc.Ln(6)

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(100, 7, "Description")
	doc.Cell(25, 7, "Qty")
	doc.Cell(30, 7, "Price")
	doc.Cell(30, 7, "Total")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	for _, it := range s.Items {
		doc.Cell(100, 6, tr(trim(it.Description, 55)))
		doc.Cell(25, 6, fmt.Sprintf("%g", it.Quantity))
		doc.Cell(30, 6, quote.FormatMoney(it.Price))
		doc.Cell(30, 6, quote.FormatMoney(it.Total))
		doc.Ln(6)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, "Total: "+quote.FormatMoney(s.Total))
	doc.Ln(6)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// Server records every submission it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []quote.Submission
	status   int
	body     []byte
	delay    time.Duration
}

// NewServer starts a renderer that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes the next responses use status and msg instead of a PDF.
func (s *Server) Fail(status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = []byte(msg)
}

// Respond makes the next responses return body with status 200.
func (s *Server) Respond(body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = http.StatusOK
	s.body = body
}

// Reset returns to rendering real PDFs without delay.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = 0
	s.body = nil
	s.delay = 0
}

// Delay holds every response for d, or until the client goes away.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns the submissions received so far.
func (s *Server) Requests() []quote.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]quote.Submission, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var sub quote.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, sub)
	status, body, delay := s.status, s.body, s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		w.WriteHeader(status)
		w.Write(body)
		return
	}

	doc, err := Render(sub)
	if err != nil {
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
