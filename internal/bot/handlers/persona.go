package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edgard/riffbot/internal/ai"
)

const randomPersonaPrompt = "In a short sentence make up a random role an AI chatbot could play"

// randomizePersona asks the model to invent a role and adopts it. On error
// the persona is left unchanged; callers decide how to report that.
func randomizePersona(ctx context.Context, deps HandlerDeps) (string, error) {
	snap := deps.Settings.Snapshot()
	description, err := deps.Text.Complete(ctx, ai.CompletionRequest{
		SystemDirective: ai.SystemDirective(snap.Persona),
		Prompt:          randomPersonaPrompt,
		MaxTokens:       deps.Config.AI.RoleMaxTokens,
		Temperature:     snap.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invent a persona: %w", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return "", errors.New("model returned an empty persona")
	}

	deps.Settings.SetPersona(description)
	return description, nil
}
