package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gtmovel/gtmovel-api/internal/models"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondFailure sends the endpoint's failure envelope and attaches the error
// to the gin context for the request log.
func respondFailure(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.SendEmailResponse{Success: false, Message: message})
}
