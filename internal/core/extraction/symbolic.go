package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/versorium/internal/config"
	"github.com/agenthands/versorium/internal/core/common"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/llm"
)

// LLMSymbolicExtractor asks an LLM for forms and relations as JSON.
// Prompt takes two %s verbs: recent context, then the input.
type LLMSymbolicExtractor struct {
	LLM    llm.LLMClient
	Prompt string
}

// NewLLMSymbolicExtractor uses config.DefaultSymbolicPrompt when prompt is empty.
func NewLLMSymbolicExtractor(client llm.LLMClient, prompt string) *LLMSymbolicExtractor {
	if prompt == "" {
		prompt = config.DefaultSymbolicPrompt
	}
	return &LLMSymbolicExtractor{
		LLM:    client,
		Prompt: prompt,
	}
}

func (s *LLMSymbolicExtractor) ExtractSymbolicForms(ctx context.Context, raw []byte, memory ContextSnapshot) ([]model.Form, []model.FormRelation, error) {
	prompt := fmt.Sprintf(s.Prompt, strings.Join(memory.Entries, "\n"), string(raw))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate forms: %w", err)
	}

	result, err := common.ParseJSON[model.ExtractedGraph](response)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract forms: %w", err)
	}

	forms := make([]model.Form, 0, len(result.Forms))
	for _, f := range result.Forms {
		if f.ID == "" {
			continue
		}
		forms = append(forms, model.Form{
			ID:             f.ID,
			Description:    f.Description,
			MetaProperties: map[string]string{"source": "symbolic"},
			ExamplesCount:  1,
			EthicalScore:   initialEthicalScore,
		})
	}
	return forms, result.Relations, nil
}
