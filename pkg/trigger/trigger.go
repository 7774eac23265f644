package trigger

import (
	"fmt"

	"github.com/gtmovel/gtmovel-api/pkg/httpclient"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"go.uber.org/zap"
)

// CallAsync calls a trigger URL asynchronously with a submission id appended.
// This is used to notify automation hooks (analytics, CRM) after an email was
// accepted by the provider. Failures are logged but don't block the request.
func CallAsync(triggerURL, submissionID string, httpClient httpclient.Client) {
	if triggerURL == "" {
		// No trigger URL configured, skip silently
		return
	}

	// Run in goroutine to avoid blocking
	go func() {
		targetURL := fmt.Sprintf("%s%s", triggerURL, submissionID)

		logger.Info("Calling trigger URL",
			zap.String("url", targetURL),
			zap.String("submission_id", submissionID))

		resp, err := httpClient.Get(targetURL)
		if err != nil {
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("url", targetURL),
				zap.String("submission_id", submissionID))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			logger.Info("Trigger URL called successfully",
				zap.String("url", targetURL),
				zap.String("submission_id", submissionID),
				zap.Int("status_code", resp.StatusCode))
		} else {
			logger.Warn("Trigger URL returned non-success status",
				zap.String("url", targetURL),
				zap.String("submission_id", submissionID),
				zap.Int("status_code", resp.StatusCode))
		}
	}()
}
