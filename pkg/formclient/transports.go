package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/httpclient"
)

// The three delivery mechanisms the website historically supported. Picking
// one is a construction-time decision; adding a mechanism means adding a
// Transport type, not another branch.

const (
	emailAPIEndpoint  = "https://api.emailjs.com/api/v1.0/email/send"
	formRelayEndpoint = "https://formsubmit.co/ajax/"
)

// EmailAPITransport submits through the EmailJS REST API.
type EmailAPITransport struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string // defaults to the public EmailJS endpoint
	HTTPClient httpclient.Client
}

type emailAPIPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (t *EmailAPITransport) Submit(ctx context.Context, rec *models.Submission) (bool, error) {
	phone := rec.Phone
	if phone == "" {
		phone = "Não fornecido"
	}

	payload := emailAPIPayload{
		ServiceID:  t.ServiceID,
		TemplateID: t.TemplateID,
		UserID:     t.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  rec.Name,
			"from_email": rec.Email,
			"phone":      phone,
			"subject":    rec.Subject,
			"message":    rec.Message,
			"to_name":    "GT Móvel",
		},
	}

	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = emailAPIEndpoint
	}

	resp, err := postJSON(ctx, t.HTTPClient, endpoint, payload)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return true, nil
}

// FormRelayTransport submits through the formsubmit.co ajax relay, which
// needs no credentials, only the destination address.
type FormRelayTransport struct {
	Email      string
	Endpoint   string // defaults to the public relay endpoint
	HTTPClient httpclient.Client
}

// The relay reports success as the string "true" in its JSON body.
type formRelayResponse struct {
	Success string `json:"success"`
}

func (t *FormRelayTransport) Submit(ctx context.Context, rec *models.Submission) (bool, error) {
	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = formRelayEndpoint
	}

	resp, err := postJSON(ctx, t.HTTPClient, endpoint+t.Email, map[string]string{
		"name":    rec.Name,
		"email":   rec.Email,
		"phone":   rec.Phone,
		"subject": rec.Subject,
		"message": rec.Message,
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("form relay returned status %d", resp.StatusCode)
	}

	var result formRelayResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode form relay response: %w", err)
	}
	return result.Success == "true", nil
}

// EndpointTransport submits to the site's own backend, the same endpoint the
// serverless form handler exposes.
type EndpointTransport struct {
	URL        string
	HTTPClient httpclient.Client
}

func (t *EndpointTransport) Submit(ctx context.Context, rec *models.Submission) (bool, error) {
	kind := ""
	if rec.Kind == models.KindQuote {
		kind = "orcamento"
	}

	resp, err := postJSON(ctx, t.HTTPClient, t.URL, models.SendEmailRequest{
		Nome:        rec.Name,
		Email:       rec.Email,
		Mensagem:    rec.Message,
		Telefone:    rec.Phone,
		Assunto:     rec.Subject,
		Tipo:        kind,
		TipoProduto: rec.ProductType,
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("submission endpoint returned status %d", resp.StatusCode)
	}

	var result models.SendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode submission response: %w", err)
	}
	return result.Success, nil
}

func postJSON(ctx context.Context, client httpclient.Client, url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
