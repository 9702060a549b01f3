package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/pdf"
	"freightquote/internal/domain/quote/pdf/pdftest"
)

// runCLI executes the root command with args and stdin.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_ENV", "prod")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubmit_Accepted(t *testing.T) {
	renderer := pdftest.NewServer(t)
	dir := t.TempDir()

	out, err := runCLI(t, "y\n", "submit",
		"--draft", "testdata/draft.json",
		"--endpoint", renderer.URL,
		"--out", dir)
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, quote.PDFFilename))
	require.NoError(t, err)
	assert.True(t, pdf.IsPDF(data))

	reqs := renderer.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 2681.0, reqs[0].Total)
	assert.Equal(t, "Acme Trading", reqs[0].Customer)
	assert.NotEqual(t, "CUS-FROMFILE", reqs[0].CustomerID)
	assert.Contains(t, out, "2,681.00")
	assert.Contains(t, out, "Quote PDF downloaded")
}

func TestSubmit_Declined(t *testing.T) {
	renderer := pdftest.NewServer(t)
	dir := t.TempDir()

	out, err := runCLI(t, "n\n", "submit",
		"--draft", "testdata/draft.json",
		"--endpoint", renderer.URL,
		"--out", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "You have rejected")
	assert.Zero(t, renderer.Count())
	assert.NoFileExists(t, filepath.Join(dir, quote.PDFFilename))
}

func TestSubmit_Invalid(t *testing.T) {
	renderer := pdftest.NewServer(t)

	out, err := runCLI(t, "", "submit", "--yes",
		"--draft", "testdata/incomplete.json",
		"--endpoint", renderer.URL,
		"--out", t.TempDir())

	assert.ErrorIs(t, err, errInvalidQuote)
	assert.Contains(t, out, "Please fill the required fields")
	assert.Contains(t, out, "customer:")
	assert.Zero(t, renderer.Count())
}

func TestSubmit_RendererFails(t *testing.T) {
	renderer := pdftest.NewServer(t)
	renderer.Fail(http.StatusServiceUnavailable, "busy")
	dir := t.TempDir()

	out, err := runCLI(t, "", "submit", "--yes",
		"--draft", "testdata/draft.json",
		"--endpoint", renderer.URL,
		"--out", dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, out, "Could not generate the PDF")
	assert.NoFileExists(t, filepath.Join(dir, quote.PDFFilename))
}

func TestSubmit_WithRateSheet(t *testing.T) {
	renderer := pdftest.NewServer(t)
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Description", "Quantity", "Price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Trucking", 3, 120}))
	rates := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, f.SaveAs(rates))
	require.NoError(t, f.Close())

	_, err := runCLI(t, "", "submit", "--yes",
		"--draft", "testdata/draft.json",
		"--rates", rates,
		"--endpoint", renderer.URL,
		"--out", t.TempDir())
	require.NoError(t, err)

	reqs := renderer.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Items, 1)
	assert.Equal(t, "Trucking", reqs[0].Items[0].Description)
	assert.Equal(t, 360.0, reqs[0].Total)
}

func TestSubmit_DraftRequired(t *testing.T) {
	_, err := runCLI(t, "", "submit")
	assert.ErrorContains(t, err, "draft")
}

func TestOptionsCommand(t *testing.T) {
	out, err := runCLI(t, "", "options")
	require.NoError(t, err)

	assert.Contains(t, out, "incoterms")
	assert.Contains(t, out, "FOB")
	assert.Contains(t, out, "40HC")
	assert.Contains(t, out, quote.Terms()[0])
}

func TestLoadDraft(t *testing.T) {
	d, err := loadDraft("testdata/draft.json")
	require.NoError(t, err)
	assert.Equal(t, "Shanghai", d.Fields["from"])
	assert.Len(t, d.Items, 2)

	f := quote.NewForm()
	require.NoError(t, d.apply(f))
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "Rotterdam", f.Fields().To)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = loadDraft(bad)
	assert.ErrorContains(t, err, "parse draft")

	_, err = quoteDraft(t, map[string]string{"unit": "99XX"})
	assert.ErrorIs(t, err, quote.ErrUnknownOption)
}

func quoteDraft(t *testing.T, fields map[string]string) (*quote.Form, error) {
	t.Helper()
	f := quote.NewForm()
	return f, draft{Fields: fields}.apply(f)
}
