package formclient

import (
	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/validate"
)

// Form holds the field values of one form instance together with the
// required flags its HTML counterpart declares.
type Form struct {
	kind     models.SubmissionKind
	values   map[string]string
	required map[string]bool
}

// NewContactForm mirrors the website contact form: name, email, subject and
// message are required, phone is optional.
func NewContactForm() *Form {
	return &Form{
		kind:   models.KindContact,
		values: map[string]string{},
		required: map[string]bool{
			validate.FieldName:    true,
			validate.FieldEmail:   true,
			validate.FieldSubject: true,
			validate.FieldMessage: true,
		},
	}
}

// NewQuoteForm mirrors the quote form: name, email and message are required,
// phone and product type optional. There is no subject input.
func NewQuoteForm() *Form {
	return &Form{
		kind:   models.KindQuote,
		values: map[string]string{},
		required: map[string]bool{
			validate.FieldName:    true,
			validate.FieldEmail:   true,
			validate.FieldMessage: true,
		},
	}
}

// Set stores a field value.
func (f *Form) Set(field, value string) {
	f.values[field] = value
}

// Get returns the current value of a field.
func (f *Form) Get(field string) string {
	return f.values[field]
}

// ValidateField applies the single-field rules, as the website does on blur.
// Returns "" when the field is acceptable.
func (f *Form) ValidateField(field string) string {
	return validate.Field(field, f.values[field], f.required[field])
}

// Record snapshots the form into a Submission.
func (f *Form) Record() *models.Submission {
	return &models.Submission{
		Kind:        f.kind,
		Name:        f.values[validate.FieldName],
		Email:       f.values[validate.FieldEmail],
		Message:     f.values[validate.FieldMessage],
		Phone:       f.values[validate.FieldPhone],
		Subject:     f.values[validate.FieldSubject],
		ProductType: f.values[validate.FieldProduct],
	}
}

// Reset clears all field values, as after an accepted submission.
func (f *Form) Reset() {
	f.values = map[string]string{}
}
