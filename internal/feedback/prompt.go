package feedback

import (
	"fmt"
	"strings"

	"github.com/handpartners/pmfstudio/internal/contract"
	"github.com/handpartners/pmfstudio/schema"
)

// promptAnswerWidth bounds how much of each free-text answer reaches the prompt.
const promptAnswerWidth = 600

// promptFields lists the survey answers surfaced to the model, in section order.
var promptFields = []string{
	"problem", "problem_intensity", "current_alternatives", "willingness_to_pay",
	"target", "beachhead_customer", "customer_access",
	"solution", "usp", "mvp_status", "pricing_model",
	"users_count", "repeat_usage", "retention_signal", "revenue_status", "key_feedback",
	"market_size", "channels", "cac_ltv_estimate", "pmf_pull_signal", "referral_signal",
	"next_experiments", "biggest_risk",
}

// PromptBuilder assembles narrative prompts from evaluations.
type PromptBuilder struct{}

// BuildNarrativePrompt produces the prompt for the qualitative report sections.
func (b *PromptBuilder) BuildNarrativePrompt(startupName string, in schema.SurveyInput, eval schema.Evaluation) string {
	var sb strings.Builder

	sb.WriteString("You are a startup advisor at an early-stage venture studio.\n")
	sb.WriteString("Write the qualitative sections of a product-market fit assessment report.\n\n")

	if startupName != "" {
		fmt.Fprintf(&sb, "Startup: %s\n", startupName)
	}
	fmt.Fprintf(&sb, "Stage: %s\n", eval.Display.Stage)
	if eval.Display.Score != nil {
		fmt.Fprintf(&sb, "PMF score: %.1f\n", *eval.Display.Score)
	} else {
		sb.WriteString("PMF score: not assessable from the submitted responses\n")
	}
	fmt.Fprintf(&sb, "Data quality: %d/100 (%s)\n\n", eval.Quality.Score, eval.Quality.Label)

	sb.WriteString("Component scores (0-100):\n")
	for _, key := range schema.AllComponentKeys {
		fmt.Fprintf(&sb, "- %s: %.0f\n", key, eval.Components[key])
	}

	sb.WriteString("\nFounder responses:\n")
	for _, field := range promptFields {
		answer := strings.TrimSpace(in.Get(field).AsText())
		if answer == "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", field, contract.TruncateText(answer, promptAnswerWidth))
	}

	sb.WriteString(`
Write exactly four markdown sections with these level-2 headings:

## Problem & Persona
## Solution & Value
## Market Validation & Traction
## Recommendations & Next Steps

Ground every claim in the responses above. Where evidence is thin, say so
plainly instead of speculating. Keep each section under 150 words and end
the last section with three concrete next experiments.
`)

	return sb.String()
}
