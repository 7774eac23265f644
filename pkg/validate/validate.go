// Package validate holds the pure field rules shared by the website form
// client and the server-side email endpoint. Both sides must agree on the
// email shape, so the regex lives here and nowhere else.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gtmovel/gtmovel-api/internal/models"
)

// Field names understood by the rules below.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
	FieldSubject = "subject"
	FieldPhone   = "phone"
	FieldProduct = "productType"
)

// User-facing messages, pt-PT to match the website copy.
const (
	MsgRequired     = "Este campo é obrigatório"
	MsgInvalidEmail = "Por favor, insira um email válido"
	MsgNameTooShort = "Nome deve ter pelo menos 2 caracteres"
	MsgMsgTooShort  = "Mensagem deve ter pelo menos 10 caracteres"
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result maps a field name to its error message. An empty Result means the
// record is eligible for submission.
type Result map[string]string

// Valid reports whether no field rule failed.
func (r Result) Valid() bool { return len(r) == 0 }

// Email reports whether value has the local@domain.tld shape.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// Field applies the rules for a single field and returns an error message,
// or "" when the value is acceptable. Rule precedence, first match wins:
// required-and-empty, email shape, minimum length.
func Field(name, value string, required bool) string {
	v := strings.TrimSpace(value)

	if required && v == "" {
		return MsgRequired
	}
	if name == FieldEmail && v != "" && !Email(v) {
		return MsgInvalidEmail
	}
	if name == FieldName && v != "" && utf8.RuneCountInString(v) < minNameLen {
		return MsgNameTooShort
	}
	if name == FieldMessage && v != "" && utf8.RuneCountInString(v) < minMessageLen {
		return MsgMsgTooShort
	}
	return ""
}

// Record validates a whole submission. Name, email and message are required
// for both kinds. Subject is required for the contact form only; the quote
// form does not declare a subject input, so an empty subject on a quote is
// fine.
func Record(rec *models.Submission) Result {
	res := Result{}

	check := func(field, value string, required bool) {
		if msg := Field(field, value, required); msg != "" {
			res[field] = msg
		}
	}

	check(FieldName, rec.Name, true)
	check(FieldEmail, rec.Email, true)
	check(FieldMessage, rec.Message, true)
	check(FieldSubject, rec.Subject, rec.Kind == models.KindContact)
	check(FieldPhone, rec.Phone, false)

	return res
}
