package validate

import (
	"strings"
	"testing"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestField_RequiredTakesPrecedence(t *testing.T) {
	// Empty required field reports required, not a format error.
	assert.Equal(t, MsgRequired, Field(FieldEmail, "", true))
	assert.Equal(t, MsgRequired, Field(FieldEmail, "   ", true))
	assert.Equal(t, MsgRequired, Field(FieldName, "", true))
}

func TestField_OptionalEmptyIsValid(t *testing.T) {
	assert.Empty(t, Field(FieldPhone, "", false))
	assert.Empty(t, Field(FieldSubject, "", false))
}

func TestField_EmailFormat(t *testing.T) {
	valid := []string{
		"a@b.co",
		"joao.silva@gtmovel.pt",
		"user+tag@sub.domain.org",
	}
	invalid := []string{
		"not-an-email",
		"missing@tld",
		"spaces in@mail.pt",
		"@nodomain.pt",
		"user@.pt",
		"user@domain.",
	}

	for _, v := range valid {
		assert.Empty(t, Field(FieldEmail, v, true), "expected %q to be valid", v)
		assert.True(t, Email(v), "expected %q to match", v)
	}
	for _, v := range invalid {
		assert.Equal(t, MsgInvalidEmail, Field(FieldEmail, v, true), "expected %q to be invalid", v)
		assert.False(t, Email(v), "expected %q not to match", v)
	}
}

func TestField_NameLengthBoundary(t *testing.T) {
	assert.Equal(t, MsgNameTooShort, Field(FieldName, "J", true))
	// Exactly two runes passes.
	assert.Empty(t, Field(FieldName, "Jo", true))
	// Accents count as one rune.
	assert.Empty(t, Field(FieldName, "Zé", true))
	// Whitespace is trimmed before counting.
	assert.Equal(t, MsgNameTooShort, Field(FieldName, "  J  ", true))
}

func TestField_MessageLengthBoundary(t *testing.T) {
	assert.Equal(t, MsgMsgTooShort, Field(FieldMessage, strings.Repeat("x", 9), true))
	assert.Empty(t, Field(FieldMessage, strings.Repeat("x", 10), true))
}

func TestRecord_FlagsExactlyTheMissingFields(t *testing.T) {
	rec := &models.Submission{
		Kind:    models.KindQuote,
		Name:    "Maria Santos",
		Message: "Preciso de um orçamento para mudança",
	}

	res := Record(rec)
	assert.False(t, res.Valid())
	assert.Contains(t, res, FieldEmail)
	assert.NotContains(t, res, FieldName)
	assert.NotContains(t, res, FieldMessage)
	// Quote form declares no subject input.
	assert.NotContains(t, res, FieldSubject)
}

func TestRecord_ContactRequiresSubject(t *testing.T) {
	rec := &models.Submission{
		Kind:    models.KindContact,
		Name:    "Maria Santos",
		Email:   "maria@example.pt",
		Message: "Gostaria de mais informações",
	}

	res := Record(rec)
	assert.Equal(t, Result{FieldSubject: MsgRequired}, res)
}

func TestRecord_ValidSubmission(t *testing.T) {
	rec := &models.Submission{
		Kind:    models.KindContact,
		Name:    "Maria Santos",
		Email:   "maria@example.pt",
		Subject: "Orçamento",
		Message: "Gostaria de mais informações",
	}

	res := Record(rec)
	assert.True(t, res.Valid())
	assert.Empty(t, res)
}
