package ai

import "context"

// Provider abstracts the text-generation backend used for answer evaluation.
type Provider interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}
