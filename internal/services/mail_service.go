package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gtmovel/gtmovel-api/config"
	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/internal/templates"
	apperrors "github.com/gtmovel/gtmovel-api/pkg/errors"
	"github.com/gtmovel/gtmovel-api/pkg/httpclient"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"github.com/gtmovel/gtmovel-api/pkg/metrics"
	"github.com/gtmovel/gtmovel-api/pkg/resend"
	"github.com/gtmovel/gtmovel-api/pkg/tracing"
	"github.com/gtmovel/gtmovel-api/pkg/trigger"
	"github.com/gtmovel/gtmovel-api/pkg/validate"
	"go.uber.org/zap"
)

// Caller-visible messages, pt-PT to match the website.
const (
	MsgMissingFields  = "Campos obrigatórios não preenchidos"
	MsgInvalidEmail   = "Email inválido"
	MsgMissingConfig  = "Configuração de email não encontrada"
	MsgEmailSent      = "Email enviado com sucesso!"
	MsgProviderFailed = "Erro ao enviar email. Tente novamente."
	MsgInternalError  = "Erro interno do servidor"
)

// MailService runs the submission pipeline: validate the payload on the trust
// boundary, render the kind-specific template and dispatch exactly one email
// through the provider. It is stateless; every call is independent.
type MailService struct {
	cfg        *config.Config
	provider   EmailProvider
	httpClient httpclient.Client
	now        func() time.Time
}

// NewMailService creates a new mail service instance
func NewMailService(cfg *config.Config, provider EmailProvider, httpClient httpclient.Client) *MailService {
	return &MailService{
		cfg:        cfg,
		provider:   provider,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (s *MailService) Send(ctx context.Context, req *models.SendEmailRequest) (*models.SendEmailResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "MailService.Send")
	defer span.End()

	sub := req.Normalize()
	kind := string(sub.Kind)

	// Client-side validation never gates this endpoint: it is reachable
	// directly, so the same checks run again here.
	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		metrics.EmailSubmissions.WithLabelValues(kind, "invalid").Inc()
		return nil, apperrors.ValidationError(MsgMissingFields)
	}

	if !validate.Email(sub.Email) {
		metrics.EmailSubmissions.WithLabelValues(kind, "invalid").Inc()
		return nil, apperrors.ValidationError(MsgInvalidEmail)
	}

	if !s.cfg.IsEmailConfigured() {
		// Log only the boolean fact, never anything about the key.
		logger.Error("Email provider credential not configured")
		metrics.EmailSubmissions.WithLabelValues(kind, "config_error").Inc()
		return nil, apperrors.ConfigurationError(MsgMissingConfig)
	}

	html, err := templates.Render(sub, s.now())
	if err != nil {
		metrics.EmailSubmissions.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("render email: %w", err)
	}

	// Reply-to points at the submitter so a plain reply reaches them without
	// exposing the internal recipient address on the form.
	result, err := s.provider.Send(ctx, &resend.Email{
		From:    s.cfg.Mail.From,
		To:      []string{s.cfg.Mail.To},
		ReplyTo: sub.Email,
		Subject: templates.Subject(sub),
		HTML:    html,
	})
	if err != nil {
		metrics.EmailSubmissions.WithLabelValues(kind, "error").Inc()
		return nil, apperrors.ProviderError(MsgProviderFailed, err)
	}

	if !result.Accepted {
		// Raw provider detail was already logged by the client.
		metrics.EmailSubmissions.WithLabelValues(kind, "provider_error").Inc()
		return nil, apperrors.ProviderError(MsgProviderFailed,
			fmt.Errorf("provider returned status %d", result.StatusCode))
	}

	metrics.EmailSubmissions.WithLabelValues(kind, "success").Inc()
	logger.Info("Submission email dispatched",
		zap.String("kind", kind),
		zap.String("provider_message_id", result.MessageID))

	// Notify automation hooks without blocking the response.
	trigger.CallAsync(s.cfg.EventTriggers.SubmissionReceivedTriggerURL, result.MessageID, s.httpClient)

	return &models.SendEmailResponse{
		Success: true,
		Message: MsgEmailSent,
		ID:      result.MessageID,
	}, nil
}
