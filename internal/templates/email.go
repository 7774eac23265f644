// Package templates renders the outbound HTML emails. All user-supplied
// values go through html/template so a hostile form field can never inject
// markup into the email.
package templates

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gtmovel/gtmovel-api/internal/models"
)

const layout = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #F97316 0%, #EA580C 100%); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 28px;">GT Móvel</h1>
    <p style="color: white; margin: 10px 0 0 0; font-size: 16px;">{{.Heading}}</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px;">
    <div style="background: white; border-radius: 8px; padding: 25px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
      <h2 style="color: #1e293b; margin-top: 0; border-bottom: 2px solid #F97316; padding-bottom: 10px;">{{.Title}}</h2>
      <table style="width: 100%; border-collapse: collapse;">
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0;"><strong style="color: #64748b;">Nome:</strong></td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; text-align: right;"><span style="color: #1e293b;">{{.Submission.Name}}</span></td>
        </tr>
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0;"><strong style="color: #64748b;">Email:</strong></td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; text-align: right;"><a href="mailto:{{.Submission.Email}}" style="color: #F97316; text-decoration: none;">{{.Submission.Email}}</a></td>
        </tr>
        {{- if .Submission.Phone}}
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0;"><strong style="color: #64748b;">Telefone:</strong></td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; text-align: right;"><a href="tel:{{.Submission.Phone}}" style="color: #F97316; text-decoration: none;">{{.Submission.Phone}}</a></td>
        </tr>
        {{- end}}
        {{- if .Submission.ProductType}}
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0;"><strong style="color: #64748b;">Tipo de Produto:</strong></td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; text-align: right;"><span style="color: #1e293b;">{{.Submission.ProductType}}</span></td>
        </tr>
        {{- end}}
        {{- if .Submission.Subject}}
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0;"><strong style="color: #64748b;">Assunto:</strong></td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e2e8f0; text-align: right;"><span style="color: #1e293b;">{{.Submission.Subject}}</span></td>
        </tr>
        {{- end}}
      </table>
      <div style="margin-top: 25px; padding: 20px; background: #f8fafc; border-left: 4px solid #F97316; border-radius: 4px;">
        <strong style="color: #64748b; display: block; margin-bottom: 10px;">Mensagem:</strong>
        <p style="color: #1e293b; line-height: 1.6; margin: 0; white-space: pre-wrap;">{{.Submission.Message}}</p>
      </div>
    </div>
    <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e2e8f0;">
      <p style="color: #64748b; font-size: 14px; margin: 0;">Enviado através do {{.Source}} em <strong>www.gtmovel.com</strong></p>
      <p style="color: #94a3b8; font-size: 12px; margin: 10px 0 0 0;">{{.Timestamp}}</p>
    </div>
  </div>
</div>`

var emailTmpl = template.Must(template.New("email").Parse(layout))

type templateData struct {
	Heading    string
	Title      string
	Source     string
	Timestamp  string
	Submission *models.Submission
}

// Subject builds the subject line of the outbound email by kind.
func Subject(sub *models.Submission) string {
	if sub.Kind == models.KindQuote {
		product := sub.ProductType
		if product == "" {
			product = "Geral"
		}
		return fmt.Sprintf("Novo Pedido de Orçamento - %s", product)
	}

	subject := sub.Subject
	if subject == "" {
		subject = "Sem Assunto"
	}
	return fmt.Sprintf("Novo Contacto via Website - %s", subject)
}

// Render produces the HTML body for a submission. now stamps the footer in
// the site's local convention.
func Render(sub *models.Submission, now time.Time) (string, error) {
	data := templateData{
		Heading:    "Novo Contacto",
		Title:      "Informações do Contacto",
		Source:     "formulário de contacto",
		Timestamp:  now.Format("02/01/2006 15:04"),
		Submission: sub,
	}
	if sub.Kind == models.KindQuote {
		data.Heading = "Novo Pedido de Orçamento"
		data.Title = "Detalhes do Pedido"
		data.Source = "formulário de orçamentos"
	}

	var b strings.Builder
	if err := emailTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return b.String(), nil
}
