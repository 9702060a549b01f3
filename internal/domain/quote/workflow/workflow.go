// Package workflow drives a quote from the submit button to a delivered
// PDF. It is a small state machine:
//
//	Idle -> Confirming -> Idle                      (rejected or cancelled)
//	Idle -> Confirming -> FailedValidation -> Idle
//	Idle -> Confirming -> Submitting -> Succeeded -> Idle
//	Idle -> Confirming -> Submitting -> FailedRequest -> Idle
//
// The user interface is reached only through the UI interface, so the
// same machine serves the HTTP API, the terminal and tests.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/pdf"
)

// ErrSubmitInProgress is returned while another submission of the same
// form has not finished.
var ErrSubmitInProgress = errors.New("submission already in progress")

// DefaultTimeout bounds one request to the renderer.
const DefaultTimeout = 30 * time.Second

type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (Decision, error)
}

type Notifier interface {
	Notify(n Notification)
}

type Deliverer interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// UI is everything the workflow needs from the user's side.
type UI interface {
	Confirmer
	Notifier
	Deliverer
}

// Workflow submits one form. It is safe for concurrent use; concurrent
// Submit calls are refused with ErrSubmitInProgress.
type Workflow struct {
	form      *quote.Form
	generator pdf.Generator
	log       *zap.Logger
	timeout   time.Duration
	now       func() time.Time
	onChange  func(from, to State)

	mu      sync.Mutex
	state   State
	loading bool
}

type Option func(*Workflow)

func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

// WithTimeout bounds the renderer request. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(w *Workflow) {
		if d > 0 {
			w.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// OnTransition registers a hook called after every state change.
func OnTransition(fn func(from, to State)) Option {
	return func(w *Workflow) { w.onChange = fn }
}

func New(form *quote.Form, gen pdf.Generator, opts ...Option) *Workflow {
	w := &Workflow{
		form:      form,
		generator: gen,
		log:       zap.NewNop(),
		timeout:   DefaultTimeout,
		now:       time.Now,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Loading reports whether a request to the renderer is in flight.
func (w *Workflow) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

func (w *Workflow) Form() *quote.Form {
	return w.form
}

// Submit runs one pass of the state machine and always leaves it Idle
// with the loading flag cleared. The returned error is non-nil only for
// OutcomeFailed and for ErrSubmitInProgress.
func (w *Workflow) Submit(ctx context.Context, ui UI) (Outcome, error) {
	if err := w.begin(); err != nil {
		return "", err
	}

	decision, err := ui.Confirm(ctx, confirmPrompt)
	if err != nil {
		w.log.Info("quote submit: confirmation aborted", zap.Error(err))
		decision = Cancel
	}

	switch decision {
	case Reject:
		ui.Notify(rejectedNote())
		w.transition(StateIdle, false)
		return OutcomeRejected, nil
	case Accept:
	default:
		ui.Notify(cancelledNote())
		w.transition(StateIdle, false)
		return OutcomeCancelled, nil
	}

	if err := w.form.Validate(); err != nil {
		w.form.MarkAllTouched()
		w.transition(StateFailedValidation, false)
		w.log.Info("quote submit: validation failed",
			zap.String("customer_id", w.form.CustomerID()), zap.Error(err))
		ui.Notify(invalidNote())
		w.transition(StateIdle, false)
		return OutcomeInvalid, nil
	}

	ui.Notify(generatingNote())
	w.transition(StateSubmitting, true)

	sub := w.form.Submission(w.now())
	doc, err := w.generate(ctx, sub)
	if err != nil {
		return w.fail(ui, MsgRequestFailed, err)
	}
	if err := ui.Deliver(ctx, quote.PDFFilename, doc); err != nil {
		return w.fail(ui, MsgDeliverFailed, err)
	}

	w.transition(StateSucceeded, false)
	w.log.Info("quote submit: delivered",
		zap.String("customer_id", sub.CustomerID),
		zap.Float64("total", sub.Total),
		zap.Int("items", len(sub.Items)),
		zap.Int("bytes", len(doc)))
	ui.Notify(downloadedNote())
	w.transition(StateIdle, false)
	return OutcomeSucceeded, nil
}

func (w *Workflow) generate(ctx context.Context, sub quote.Submission) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	doc, err := w.generator.Generate(ctx, sub)
	if err != nil {
		return nil, err
	}
	if !pdf.IsPDF(doc) {
		return nil, fmt.Errorf("renderer returned %d bytes that are not a pdf", len(doc))
	}
	return doc, nil
}

func (w *Workflow) fail(ui UI, msg string, err error) (Outcome, error) {
	w.transition(StateFailedRequest, false)
	w.log.Warn("quote submit: failed",
		zap.String("customer_id", w.form.CustomerID()), zap.Error(err))
	ui.Notify(failedNote(msg, err))
	w.transition(StateIdle, false)
	return OutcomeFailed, err
}

func (w *Workflow) begin() error {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}
	w.state = StateConfirming
	w.mu.Unlock()
	w.changed(StateIdle, StateConfirming)
	return nil
}

func (w *Workflow) transition(to State, loading bool) {
	w.mu.Lock()
	from := w.state
	w.state = to
	w.loading = loading
	w.mu.Unlock()
	w.changed(from, to)
}

func (w *Workflow) changed(from, to State) {
	if w.onChange != nil {
		w.onChange(from, to)
	}
}
