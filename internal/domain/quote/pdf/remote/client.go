package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/pdf"
)

// DefaultEndpoint is where the quote renderer listens in development.
const DefaultEndpoint = "http://localhost:3000/api/quotes"

const maxPDFBytes = 32 << 20

// ErrNotPDF is returned when a 2xx response does not carry a PDF document.
var ErrNotPDF = errors.New("response is not a pdf")

// StatusError reports a non-2xx answer from the renderer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("quote renderer status %d", e.Code)
	}
	return fmt.Sprintf("quote renderer status %d: %s", e.Code, e.Body)
}

// Client posts submissions to the external renderer and returns its PDF.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Log      *zap.Logger
}

var _ pdf.Generator = (*Client)(nil)

func New(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{Endpoint: endpoint, HTTP: httpClient, Log: logger}
}

func (c *Client) Generate(ctx context.Context, s quote.Submission) ([]byte, error) {
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return nil, fmt.Errorf("invalid quote renderer url %q", c.Endpoint)
	}
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn("quote renderer: request failed",
			zap.String("customer_id", s.CustomerID), zap.Error(err))
		return nil, fmt.Errorf("post %s: %w", c.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.Log.Warn("quote renderer: bad status",
			zap.String("customer_id", s.CustomerID), zap.Int("status", resp.StatusCode))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if len(data) > maxPDFBytes {
		return nil, fmt.Errorf("pdf exceeds %d bytes", maxPDFBytes)
	}
	if !pdf.IsPDF(data) {
		return nil, fmt.Errorf("%w (content-type %q)", ErrNotPDF, resp.Header.Get("Content-Type"))
	}

	c.Log.Info("quote renderer: pdf received",
		zap.String("customer_id", s.CustomerID),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))
	return data, nil
}
