package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/internal/services"
	apperrors "github.com/gtmovel/gtmovel-api/pkg/errors"
)

type EmailHandler struct {
	service services.MailServiceInterface
}

func NewEmailHandler(service services.MailServiceInterface) *EmailHandler {
	return &EmailHandler{service: service}
}

// SendEmail handles POST /api/enviar-email. Every outcome is a JSON body;
// the status code follows the error taxonomy of the pipeline.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, services.MsgMissingFields, err)
		return
	}

	resp, err := h.service.Send(c.Request.Context(), &req)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrValidation):
			respondFailure(c, http.StatusBadRequest, apperrors.SafeMessage(err, services.MsgMissingFields), err)
		case apperrors.Is(err, apperrors.ErrConfiguration):
			respondFailure(c, http.StatusInternalServerError, apperrors.SafeMessage(err, services.MsgMissingConfig), err)
		case apperrors.Is(err, apperrors.ErrProvider):
			respondFailure(c, http.StatusInternalServerError, apperrors.SafeMessage(err, services.MsgProviderFailed), err)
		default:
			respondFailure(c, http.StatusInternalServerError, services.MsgInternalError, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
