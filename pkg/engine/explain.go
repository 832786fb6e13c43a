package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meshquery-inc/meshquery-engine/pkg/apperrors"
	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// staticExplanation is the fallback when no completion provider is
// available or the provider fails.
const staticExplanation = "This query will execute against your data source and return the rows matching its conditions. Configure a completion provider for a detailed explanation."

func (e *engine) Explain(ctx context.Context, sqlText string) *models.ResultEnvelope {
	requestID := uuid.NewString()
	sqlText = strings.TrimSpace(sqlText)

	if sqlText == "" {
		return failure(requestID, models.IntentGeneral, apperrors.ErrEmptyInput)
	}

	env := &models.ResultEnvelope{
		RequestID: requestID,
		Success:   true,
		SQL:       sqlText,
		Message:   staticExplanation,
	}
	if e.client == nil {
		return env
	}

	prompt := fmt.Sprintf(
		"Explain in plain language, in two or three sentences, what the following SQL query does:\n\n%s\n\nExplanation:",
		sqlText)
	response, err := e.client.Complete(ctx, prompt, 300, 0.3)
	if err != nil {
		e.logger.Warn("explain completion failed, using static fallback", zap.Error(err))
		return env
	}
	if explanation := strings.TrimSpace(response); explanation != "" {
		env.Message = explanation
	}
	return env
}
