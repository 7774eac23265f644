package services_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gtmovel/gtmovel-api/config"
	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/internal/services"
	apperrors "github.com/gtmovel/gtmovel-api/pkg/errors"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"github.com/gtmovel/gtmovel-api/pkg/resend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// MockEmailProvider implements EmailProvider for testing
type MockEmailProvider struct {
	mock.Mock
}

func (m *MockEmailProvider) Send(ctx context.Context, email *resend.Email) (*models.DispatchResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DispatchResult), args.Error(1)
}

// fakeHTTPClient records trigger calls.
type fakeHTTPClient struct {
	got chan string
}

func (f *fakeHTTPClient) Get(url string) (*http.Response, error) {
	f.got <- url
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("ok"))}, nil
}

func (f *fakeHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return f.Get(url)
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return f.Get(req.URL.String())
}

func testConfig() *config.Config {
	return &config.Config{
		Resend: config.ResendConfig{
			APIKey: "re_test_key",
			APIURL: "https://api.resend.com/emails",
		},
		Mail: config.MailConfig{
			From: "GT Móvel Website <noreply@gtmovel.com>",
			To:   "info@gtmovel.pt",
		},
	}
}

func TestMailService_Send_Success(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	provider.On("Send", mock.Anything, mock.MatchedBy(func(email *resend.Email) bool {
		return email.ReplyTo == "a@b.co" &&
			email.To[0] == "info@gtmovel.pt" &&
			strings.HasPrefix(email.Subject, "Novo Contacto via Website")
	})).Return(&models.DispatchResult{
		Accepted:   true,
		MessageID:  "re_abc123",
		StatusCode: http.StatusOK,
	}, nil).Once()

	// Kind omitted: defaults to the contact template.
	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "a@b.co",
		Message: "1234567890",
	})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, services.MsgEmailSent, resp.Message)
	assert.Equal(t, "re_abc123", resp.ID)
	provider.AssertExpectations(t)
}

func TestMailService_Send_QuoteTemplate(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	provider.On("Send", mock.Anything, mock.MatchedBy(func(email *resend.Email) bool {
		return email.Subject == "Novo Pedido de Orçamento - Sofá" &&
			strings.Contains(email.HTML, "Detalhes do Pedido")
	})).Return(&models.DispatchResult{Accepted: true, MessageID: "re_q1", StatusCode: 200}, nil).Once()

	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Nome:        "Maria Santos",
		Email:       "maria@example.pt",
		Mensagem:    "Preciso de um orçamento para a sala",
		Tipo:        "orcamento",
		TipoProduto: "Sofá",
	})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	provider.AssertExpectations(t)
}

func TestMailService_Send_MissingRequiredFields(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	cases := []*models.SendEmailRequest{
		{Email: "a@b.co", Message: "1234567890"},        // no name
		{Name: "Jo", Message: "1234567890"},             // no email
		{Name: "Jo", Email: "a@b.co"},                   // no message
		{Nome: "  ", Email: "a@b.co", Mensagem: "    "}, // whitespace only
	}

	for _, req := range cases {
		resp, err := service.Send(context.Background(), req)
		assert.Nil(t, resp)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		assert.Equal(t, services.MsgMissingFields, apperrors.SafeMessage(err, ""))
	}

	provider.AssertNotCalled(t, "Send")
}

func TestMailService_Send_InvalidEmail(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "not-an-email",
		Message: "1234567890",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, services.MsgInvalidEmail, apperrors.SafeMessage(err, ""))
	provider.AssertNotCalled(t, "Send")
}

func TestMailService_Send_MissingCredential(t *testing.T) {
	provider := new(MockEmailProvider)
	cfg := testConfig()
	cfg.Resend.APIKey = ""
	service := services.NewMailService(cfg, provider, nil)

	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "a@b.co",
		Message: "1234567890",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	msg := apperrors.SafeMessage(err, "")
	assert.Equal(t, services.MsgMissingConfig, msg)
	// The key value must never surface anywhere.
	assert.NotContains(t, err.Error(), "re_test_key")
	provider.AssertNotCalled(t, "Send")
}

func TestMailService_Send_ProviderRejection(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	provider.On("Send", mock.Anything, mock.Anything).Return(&models.DispatchResult{
		Accepted:   false,
		StatusCode: http.StatusUnprocessableEntity,
	}, nil).Once()

	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "a@b.co",
		Message: "1234567890",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrProvider))
	assert.Equal(t, services.MsgProviderFailed, apperrors.SafeMessage(err, ""))
	provider.AssertExpectations(t)
}

func TestMailService_Send_ProviderTransportError(t *testing.T) {
	provider := new(MockEmailProvider)
	service := services.NewMailService(testConfig(), provider, nil)

	provider.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	resp, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "a@b.co",
		Message: "1234567890",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrProvider))
	provider.AssertExpectations(t)
}

func TestMailService_Send_FiresSubmissionTrigger(t *testing.T) {
	provider := new(MockEmailProvider)
	httpClient := &fakeHTTPClient{got: make(chan string, 1)}
	cfg := testConfig()
	cfg.EventTriggers.SubmissionReceivedTriggerURL = "https://hooks.example.com/submission?id="
	service := services.NewMailService(cfg, provider, httpClient)

	provider.On("Send", mock.Anything, mock.Anything).Return(&models.DispatchResult{
		Accepted:  true,
		MessageID: "re_trigger",
	}, nil).Once()

	_, err := service.Send(context.Background(), &models.SendEmailRequest{
		Name:    "Jo",
		Email:   "a@b.co",
		Message: "1234567890",
	})
	assert.NoError(t, err)

	select {
	case url := <-httpClient.got:
		assert.Equal(t, "https://hooks.example.com/submission?id=re_trigger", url)
	case <-time.After(2 * time.Second):
		t.Fatal("submission trigger was not called")
	}
}
