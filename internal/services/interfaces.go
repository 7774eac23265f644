package services

import (
	"context"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/resend"
)

// MailServiceInterface defines the interface for the submission mail pipeline
type MailServiceInterface interface {
	Send(ctx context.Context, req *models.SendEmailRequest) (*models.SendEmailResponse, error)
}

// EmailProvider abstracts the transactional email provider client so the
// service can be tested without network access.
type EmailProvider interface {
	Send(ctx context.Context, email *resend.Email) (*models.DispatchResult, error)
}
