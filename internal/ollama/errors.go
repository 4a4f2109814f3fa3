package ollama

import (
	"fmt"

	"github.com/rahul0x24/ai-gcm/internal/models"
)

func unavailable(format string, args ...any) *models.AIError {
	return &models.AIError{Kind: models.ModelUnavailable, Reason: fmt.Sprintf(format, args...)}
}

func generationFailed(format string, args ...any) *models.AIError {
	return &models.AIError{Kind: models.GenerationFailed, Reason: fmt.Sprintf(format, args...)}
}

func invalidResponse(format string, args ...any) *models.AIError {
	return &models.AIError{Kind: models.InvalidResponse, Reason: fmt.Sprintf(format, args...)}
}
