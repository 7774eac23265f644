package models

import "strings"

// SubmissionKind discriminates between the two website forms and selects
// the required-field set and the outbound email template.
type SubmissionKind string

const (
	KindContact SubmissionKind = "contact"
	KindQuote   SubmissionKind = "quote"
)

// Submission is one normalized form submission. It only lives for the
// duration of a single dispatch and is never persisted.
type Submission struct {
	Kind        SubmissionKind
	Name        string
	Email       string
	Message     string
	Phone       string
	Subject     string
	ProductType string
}

// SendEmailRequest is the inbound JSON body of POST /api/enviar-email.
// The website forms historically sent Portuguese field names while other
// integrations send English ones, so both aliases are accepted.
type SendEmailRequest struct {
	Nome     string `json:"nome"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mensagem string `json:"mensagem"`
	Message  string `json:"message"`
	Telefone string `json:"telefone"`
	Phone    string `json:"phone"`
	Assunto  string `json:"assunto"`
	Subject  string `json:"subject"`
	Tipo     string `json:"tipo"`
	Kind     string `json:"kind"`
	// TipoProduto is set by the quote form to label the requested product.
	TipoProduto string `json:"tipoProduto"`
	ProductType string `json:"productType"`
}

// coalesce returns the Portuguese alias when it is non-empty, otherwise the
// English one. When both aliases carry different values the Portuguese one
// wins: the site itself submits Portuguese keys, English keys only come from
// secondary integrations.
func coalesce(pt, en string) string {
	if strings.TrimSpace(pt) != "" {
		return pt
	}
	return en
}

// Normalize resolves the bilingual aliases into a Submission. The kind
// defaults to a plain contact; only an explicit quote marker selects the
// quote template.
func (r *SendEmailRequest) Normalize() *Submission {
	kind := KindContact
	switch strings.ToLower(strings.TrimSpace(coalesce(r.Tipo, r.Kind))) {
	case "orcamento", "orçamento", string(KindQuote):
		kind = KindQuote
	}

	return &Submission{
		Kind:        kind,
		Name:        strings.TrimSpace(coalesce(r.Nome, r.Name)),
		Email:       strings.TrimSpace(r.Email),
		Message:     strings.TrimSpace(coalesce(r.Mensagem, r.Message)),
		Phone:       strings.TrimSpace(coalesce(r.Telefone, r.Phone)),
		Subject:     strings.TrimSpace(coalesce(r.Assunto, r.Subject)),
		ProductType: strings.TrimSpace(coalesce(r.TipoProduto, r.ProductType)),
	}
}

// SendEmailResponse is the JSON body returned by the email endpoint.
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// DispatchResult is the outcome of one outbound call to the email provider.
// The call is never retried or queued.
type DispatchResult struct {
	Accepted   bool
	MessageID  string
	StatusCode int
}
