package formclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"github.com/gtmovel/gtmovel-api/pkg/validate"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// fakeTransport scripts the transport outcome; release, when set, blocks the
// submission until the test allows it to finish.
type fakeTransport struct {
	accepted bool
	err      error
	calls    int
	release  chan struct{}
}

func (f *fakeTransport) Submit(ctx context.Context, rec *models.Submission) (bool, error) {
	f.calls++
	if f.release != nil {
		<-f.release
	}
	return f.accepted, f.err
}

type notification struct {
	message string
	kind    NotifyKind
}

func collector(got *[]notification) Notifier {
	return func(message string, kind NotifyKind) {
		*got = append(*got, notification{message, kind})
	}
}

func filledContactForm() *Form {
	form := NewContactForm()
	form.Set(validate.FieldName, "Maria Santos")
	form.Set(validate.FieldEmail, "maria@example.pt")
	form.Set(validate.FieldSubject, "Entrega")
	form.Set(validate.FieldMessage, "Gostaria de saber o prazo de entrega")
	return form
}

func TestDispatcher_Submit_AcceptedResetsForm(t *testing.T) {
	var notes []notification
	transport := &fakeTransport{accepted: true}
	d := NewDispatcher(transport, collector(&notes))
	form := filledContactForm()

	fieldErrs, err := d.Submit(context.Background(), form)
	assert.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Equal(t, 1, transport.calls)

	// Fields cleared, busy indicator released.
	assert.Empty(t, form.Get(validate.FieldName))
	assert.Empty(t, form.Get(validate.FieldMessage))
	assert.False(t, d.Busy())

	assert.Equal(t, []notification{{MsgSubmitted, NotifySuccess}}, notes)
}

func TestDispatcher_Submit_RejectionKeepsFields(t *testing.T) {
	var notes []notification
	transport := &fakeTransport{err: errors.New("network down")}
	d := NewDispatcher(transport, collector(&notes))
	form := filledContactForm()

	_, err := d.Submit(context.Background(), form)
	assert.Error(t, err)

	// A failed submission must leave the form ready for a user retry.
	assert.Equal(t, "Maria Santos", form.Get(validate.FieldName))
	assert.Equal(t, "maria@example.pt", form.Get(validate.FieldEmail))
	assert.False(t, d.Busy())

	assert.Equal(t, []notification{{MsgSubmitFailed, NotifyError}}, notes)
}

func TestDispatcher_Submit_NotAcceptedWithoutError(t *testing.T) {
	var notes []notification
	transport := &fakeTransport{accepted: false}
	d := NewDispatcher(transport, collector(&notes))
	form := filledContactForm()

	_, err := d.Submit(context.Background(), form)
	assert.Error(t, err)
	assert.False(t, d.Busy())
	assert.Equal(t, []notification{{MsgSubmitFailed, NotifyError}}, notes)
}

func TestDispatcher_Submit_InvalidFormSkipsNetwork(t *testing.T) {
	var notes []notification
	transport := &fakeTransport{accepted: true}
	d := NewDispatcher(transport, collector(&notes))

	form := NewContactForm()
	form.Set(validate.FieldName, "J") // too short
	form.Set(validate.FieldEmail, "not-an-email")

	fieldErrs, err := d.Submit(context.Background(), form)
	assert.NoError(t, err)
	assert.False(t, fieldErrs.Valid())
	assert.Equal(t, validate.MsgNameTooShort, fieldErrs[validate.FieldName])
	assert.Equal(t, validate.MsgInvalidEmail, fieldErrs[validate.FieldEmail])
	assert.Equal(t, validate.MsgRequired, fieldErrs[validate.FieldMessage])

	// No network call, no notification; errors render inline.
	assert.Equal(t, 0, transport.calls)
	assert.Empty(t, notes)
	assert.False(t, d.Busy())
}

func TestDispatcher_Submit_SingleFlight(t *testing.T) {
	transport := &fakeTransport{accepted: true, release: make(chan struct{})}
	d := NewDispatcher(transport, func(string, NotifyKind) {})

	first := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), filledContactForm())
		first <- err
	}()

	// Wait for the first submission to hold the busy flag.
	assert.Eventually(t, d.Busy, time.Second, time.Millisecond)

	_, err := d.Submit(context.Background(), filledContactForm())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(transport.release)
	assert.NoError(t, <-first)
	assert.False(t, d.Busy())
	assert.Equal(t, 1, transport.calls)
}

type chanTracker struct {
	got chan models.SubmissionKind
}

func (c *chanTracker) TrackSubmission(kind models.SubmissionKind) {
	c.got <- kind
}

func TestDispatcher_Submit_TracksAcceptedSubmission(t *testing.T) {
	tracker := &chanTracker{got: make(chan models.SubmissionKind, 1)}
	d := NewDispatcher(&fakeTransport{accepted: true}, func(string, NotifyKind) {}, WithTracker(tracker))

	_, err := d.Submit(context.Background(), filledContactForm())
	assert.NoError(t, err)

	select {
	case kind := <-tracker.got:
		assert.Equal(t, models.KindContact, kind)
	case <-time.After(2 * time.Second):
		t.Fatal("tracker was not invoked")
	}
}

func TestForm_ValidateField_PerFieldRules(t *testing.T) {
	form := NewQuoteForm()

	// Quote form: subject optional, message required.
	assert.Empty(t, form.ValidateField(validate.FieldSubject))
	assert.Equal(t, validate.MsgRequired, form.ValidateField(validate.FieldMessage))

	form.Set(validate.FieldMessage, "curta")
	assert.Equal(t, validate.MsgMsgTooShort, form.ValidateField(validate.FieldMessage))

	form.Set(validate.FieldMessage, "mensagem suficientemente longa")
	assert.Empty(t, form.ValidateField(validate.FieldMessage))
}
