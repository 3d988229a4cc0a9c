package research

import (
	"fmt"
	"strings"
)

// Prompt construction for every pipeline stage. Prompts pin the output
// format as hard as wording can; the articulation layer handles the cases
// where the collaborator drifts anyway.

const (
	summaryHeading   = "Summary"
	conflictsHeading = "Conflicts"
)

// sectionGuidance describes what belongs in each default contract section.
// Unknown (deployment-specific) sections fall back to a generic line.
var sectionGuidance = map[string]string{
	"company_overview":    "Brief 2-3 sentence overview of the company, their industry, and current market position",
	"key_stakeholders":    "Decision makers, influencers, and key contacts with their roles and relevance. Include names if available from research.",
	"pain_points":         "3-5 major business challenges or pain points the company is facing based on the research",
	"value_proposition":   "How we can help address their pain points and add value to their business. Be specific and actionable.",
	"engagement_strategy": "Recommended approach for engaging with this account, including timing, channels, and key messaging",
	"success_metrics":     "Key performance indicators and metrics to track success of the engagement. Include specific, measurable goals.",
	"next_steps":          "Specific action items with timeline for the next 30-60-90 days. Be concrete and actionable.",
}

// buildSynthesisPrompt asks for exactly two marker-delimited sections.
func buildSynthesisPrompt(corpus *ResearchCorpus) string {
	var b strings.Builder
	b.WriteString("You are a professional company research analyst. Below is a research corpus ")
	b.WriteString("assembled from several independent sources about one company. Synthesize it.\n\n")
	b.WriteString(corpus.Composite())
	b.WriteString("\n\nRespond with exactly two sections, using these exact markers:\n\n")
	fmt.Fprintf(&b, "### %s:\n", summaryHeading)
	b.WriteString("A cohesive synthesis of the research: what the company does, its market position, ")
	b.WriteString("recent developments, and anything a sales team should know. If the corpus is thin, ")
	b.WriteString("say so and summarize whatever is present.\n\n")
	fmt.Fprintf(&b, "### %s:\n", conflictsHeading)
	b.WriteString("Contradictions between the sources (figures that disagree, claims that conflict), ")
	b.WriteString("one per line as a \"- \" bullet. Write None if the sources do not contradict each other.\n")
	return b.String()
}

// buildPlanPrompt fixes the required-section contract as a literal JSON
// skeleton the collaborator must fill in.
func buildPlanPrompt(company, summary string, sections []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following research summary, generate an account plan for %s in JSON format.\n\n", company)
	b.WriteString("Research summary:\n")
	b.WriteString(summary)
	b.WriteString("\n\nGenerate ONLY a valid JSON object with these exact keys and no others:\n\n{\n")
	for i, key := range sections {
		guidance, ok := sectionGuidance[key]
		if !ok {
			guidance = "Content for this section, grounded in the research summary"
		}
		fmt.Fprintf(&b, "  %q: %q", key, guidance)
		if i < len(sections)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
	b.WriteString("CRITICAL: Respond with ONLY the JSON object. No markdown code blocks, no explanations, just pure JSON.")
	return b.String()
}

// buildRegeneratePrompt is free-form: the reply replaces one section
// verbatim, so the prompt forbids formatting and explanation.
func buildRegeneratePrompt(section, current, instruction, corpusPrefix string) string {
	var b strings.Builder
	b.WriteString("Update this section of an account plan.\n\n")
	fmt.Fprintf(&b, "Section name: %s\n", section)
	fmt.Fprintf(&b, "Current content: %s\n\n", current)
	fmt.Fprintf(&b, "Instruction: %s\n\n", instruction)
	if corpusPrefix != "" {
		fmt.Fprintf(&b, "Research context (truncated):\n%s\n\n", corpusPrefix)
	}
	b.WriteString("Provide ONLY the updated section content, no formatting or explanation.")
	return b.String()
}

// chatPreamble frames free-form turns outside the structured pipeline.
const chatPreamble = `You are a helpful company research assistant. You help users research companies, generate account plans, and navigate the research process. Be friendly, professional, and concise.`

// buildChatPrompt folds prior turns into a single prompt, oldest first.
func buildChatPrompt(history []Turn, message string) string {
	var b strings.Builder
	b.WriteString(chatPreamble)
	b.WriteString("\n\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", turn.User, turn.Assistant)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)
	return b.String()
}
