// Package formclient drives a website form submission from Go: validate the
// fields, hand the record to a configured Transport and surface the outcome
// through a notifier. It mirrors the behavior of the website's own form
// handler so embedded clients (kiosk, tests, back-office tools) behave the
// same way the browser does.
package formclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"github.com/gtmovel/gtmovel-api/pkg/validate"
	"go.uber.org/zap"
)

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one has not finished. One submission per form at a time; retry is
// always user-initiated.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// NotifyKind classifies a user notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier displays a transient message to the user. Fire-and-forget; it must
// not block.
type Notifier func(message string, kind NotifyKind)

// Tracker records a successful submission for analytics. It is an explicit,
// optional capability decided once at construction, never probed per call.
type Tracker interface {
	TrackSubmission(kind models.SubmissionKind)
}

// Transport delivers a validated submission to some delivery mechanism.
// Implementations report acceptance; failures surface as errors, not as a
// silent false.
type Transport interface {
	Submit(ctx context.Context, rec *models.Submission) (bool, error)
}

// Notification copy, pt-PT to match the website.
const (
	MsgSubmitted    = "Mensagem enviada com sucesso! Entraremos em contacto em breve."
	MsgSubmitFailed = "Erro ao enviar mensagem. Por favor, tente novamente ou contacte-nos diretamente."
)

// Dispatcher runs the submit flow for one form instance.
type Dispatcher struct {
	transport Transport
	notifier  Notifier
	tracker   Tracker
	busy      atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTracker enables analytics tracking of accepted submissions.
func WithTracker(t Tracker) Option {
	return func(d *Dispatcher) { d.tracker = t }
}

// NewDispatcher creates a dispatcher bound to one transport. The notifier may
// not be nil; pass a no-op func for headless use.
func NewDispatcher(transport Transport, notifier Notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		notifier:  notifier,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Busy reports whether a submission is in flight. Callers disable their
// submit control while this is true.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Submit validates the form and, only if every field passes, delegates to the
// transport. Field errors come back as a non-empty Result with no network
// call made. The busy flag is cleared on every exit path; the form is reset
// only when the transport accepted the submission.
func (d *Dispatcher) Submit(ctx context.Context, form *Form) (validate.Result, error) {
	if !d.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer d.busy.Store(false)

	rec := form.Record()
	if res := validate.Record(rec); !res.Valid() {
		return res, nil
	}

	accepted, err := d.transport.Submit(ctx, rec)
	if err != nil {
		logger.Error("Form submission failed", zap.Error(err), zap.String("kind", string(rec.Kind)))
		d.notifier(MsgSubmitFailed, NotifyError)
		return nil, err
	}
	if !accepted {
		d.notifier(MsgSubmitFailed, NotifyError)
		return nil, fmt.Errorf("transport did not accept the submission")
	}

	form.Reset()
	d.notifier(MsgSubmitted, NotifySuccess)
	if d.tracker != nil {
		// Analytics must never delay or fail the submission.
		go d.tracker.TrackSubmission(rec.Kind)
	}
	return nil, nil
}
