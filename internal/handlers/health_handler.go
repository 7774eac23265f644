package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	appEnv          string
	emailConfigured func() bool
}

func NewHealthHandler(appEnv string, emailConfigured func() bool) *HealthHandler {
	return &HealthHandler{
		appEnv:          appEnv,
		emailConfigured: emailConfigured,
	}
}

// Healthcheck handles GET /api/test. It always answers 200 and touches no
// external service; emailConfigured exposes only a boolean about the
// provider credential.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API GT Móvel está a funcionar!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"appEnv":          h.appEnv,
			"emailConfigured": h.emailConfigured(),
		},
	})
}
