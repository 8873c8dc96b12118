// Package llm wraps the model providers used at the extraction boundary.
package llm

import (
	"context"
)

// LLMClient generates text. Used by the symbolic form extractor.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient turns text into a latent vector for a form's representation.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
