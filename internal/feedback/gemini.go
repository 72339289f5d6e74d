// Package feedback generates qualitative report narrative with Gemini.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// narrativeQualityFloor is the quality score below which no model call is
// made. Narrative hallucinates badly on near-empty surveys, so sparse input
// gets fixed guidance instead.
const narrativeQualityFloor = 25

// sparseGuidance replaces the model narrative when the survey is too thin.
const sparseGuidance = `## Assessment Not Available

The submitted survey does not contain enough substantive answers to support
a qualitative assessment. Complete the problem, customer and traction
sections with specific evidence, then resubmit.

## Recommendations & Next Steps

- Interview at least 8 target customers and record their exact words about the problem.
- Describe the current alternatives those customers use today.
- Report any usage or retention data you have, even if the numbers are small.`

// Generator implements contract.Narrator using Gemini text generation.
type Generator struct {
	client        *genai.Client
	model         string
	promptBuilder *PromptBuilder
}

var _ contract.Narrator = &Generator{} // Compile-time check

// NewGenerator creates a narrative generator backed by the Gemini API.
func NewGenerator(ctx context.Context, apiKey string, modelName string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Generator{
		client:        client,
		model:         modelName,
		promptBuilder: &PromptBuilder{},
	}, nil
}

// Narrative produces the qualitative report sections for an evaluation.
// Surveys below the quality floor get fixed guidance without a model call.
func (g *Generator) Narrative(ctx context.Context, startupName string, in schema.SurveyInput, eval schema.Evaluation) (string, error) {
	if eval.Quality.Score < narrativeQualityFloor {
		return sparseGuidance, nil
	}

	prompt := g.promptBuilder.BuildNarrativePrompt(startupName, in, eval)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("narrative generation returned no text")
	}
	return cleanMarkdownOutput(text), nil
}

// cleanMarkdownOutput strips a wrapping markdown code fence if the model
// returned one.
func cleanMarkdownOutput(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}
