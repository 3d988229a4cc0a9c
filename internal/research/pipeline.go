package research

import (
	"context"
	"fmt"
	"strings"

	"planforge/internal/articulation"
	"planforge/internal/logging"
)

// Pipeline wires the research stages together around one collaborator.
// Control flow: BuildCorpus -> Synthesize -> GeneratePlan; RegenerateSection
// and Chat run on demand. A slow collaborator call blocks the calling
// request; timeouts belong to the caller's context.
type Pipeline struct {
	llm      LLMClient
	sections []string
	detector ConflictDetector

	// corpusPrefixLen bounds the research context embedded in
	// regeneration prompts.
	corpusPrefixLen int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConflictDetector replaces the default heuristic detector.
func WithConflictDetector(d ConflictDetector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithCorpusPrefixLen bounds the corpus prefix used in regeneration prompts.
func WithCorpusPrefixLen(n int) Option {
	return func(p *Pipeline) { p.corpusPrefixLen = n }
}

// NewPipeline creates a pipeline. sections is the required-section contract
// for generated plans; it is fixed per deployment and must stay consistent
// for the lifetime of a store.
func NewPipeline(llm LLMClient, sections []string, opts ...Option) *Pipeline {
	p := &Pipeline{
		llm:             llm,
		sections:        append([]string(nil), sections...),
		detector:        EmployeeCountDetector{},
		corpusPrefixLen: 1000,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sections returns the required-section contract.
func (p *Pipeline) Sections() []string {
	return append([]string(nil), p.sections...)
}

// Synthesize runs the synthesis stage: one collaborator call, then
// marker-section extraction of Summary and Conflicts. Missing sections
// degrade to empty values so research always produces something downstream;
// only the collaborator call itself can fail.
func (p *Pipeline) Synthesize(ctx context.Context, corpus *ResearchCorpus) (SynthesisResult, error) {
	logging.Synthesis("synthesizing corpus for %s (%d records)", corpus.Company, len(corpus.Records))

	raw, err := p.llm.CompleteWithLimit(ctx, buildSynthesisPrompt(corpus), synthesisMaxTokens)
	if err != nil {
		return SynthesisResult{}, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	parts := articulation.ExtractSections(raw, []string{summaryHeading, conflictsHeading})
	result := SynthesisResult{
		Summary:   parts[summaryHeading],
		Conflicts: NormalizeConflicts(parts[conflictsHeading]),
	}

	// Marker drift can leave the summary empty while the response still
	// holds usable prose. Fall back to the whole reply, but only when no
	// marker matched at all: with a recognized Conflicts section the
	// reply is structured and its text must not leak into the summary.
	if !articulation.HasSection(raw, summaryHeading) && !articulation.HasSection(raw, conflictsHeading) {
		result.Summary = strings.TrimSpace(raw)
	}

	if p.detector != nil {
		result.Conflicts = append(result.Conflicts, p.detector.Detect(corpus)...)
	}

	logging.Synthesis("synthesis for %s: %d chars, %d conflicts", corpus.Company, len(result.Summary), len(result.Conflicts))
	return result, nil
}

// GeneratePlan runs the plan generation stage: one collaborator call
// requesting strict JSON, articulation-layer extraction, then contract
// validation. Any failure yields a nil plan; a partial plan is never
// returned.
func (p *Pipeline) GeneratePlan(ctx context.Context, company, summary string) (AccountPlan, error) {
	logging.Plan("generating plan for %s (%d sections required)", company, len(p.sections))

	raw, err := p.llm.CompleteWithLimit(ctx, buildPlanPrompt(company, summary, p.sections), planMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	obj, status := articulation.ExtractJSONObject(raw)
	if status != articulation.StatusFound {
		logging.Plan("plan extraction for %s failed: %s", company, status)
		return nil, fmt.Errorf("%w (%s)", ErrNoStructuredData, status)
	}

	plan := AccountPlan(articulation.StringFields(obj))
	if err := plan.Validate(p.sections); err != nil {
		logging.Plan("plan for %s rejected: %v", company, err)
		return nil, err
	}

	return plan, nil
}

// RegenerateSection re-generates a single plan section from a free-text
// instruction. The reply is raw replacement text with no structural
// validation; the caller decides whether to accept it. Collaborator errors
// come back as a visible diagnostic string, never as an error: this stage
// is user-interactive and must not abort the session.
func (p *Pipeline) RegenerateSection(ctx context.Context, section, current, instruction string, corpus *ResearchCorpus) string {
	var prefix string
	if corpus != nil {
		prefix = corpus.Prefix(p.corpusPrefixLen)
	}

	raw, err := p.llm.CompleteWithLimit(ctx, buildRegeneratePrompt(section, current, instruction, prefix), regenerateMaxTokens)
	if err != nil {
		logging.Plan("section regeneration failed for %q: %v", section, err)
		return fmt.Sprintf("%s%v", regenerationFailurePrefix, err)
	}
	return strings.TrimSpace(raw)
}

const regenerationFailurePrefix = "Error regenerating section: "

// IsRegenerationFailure reports whether a RegenerateSection result is the
// failure diagnostic rather than replacement content. Callers must not
// persist a diagnostic as section text.
func IsRegenerationFailure(reply string) bool {
	return strings.HasPrefix(reply, regenerationFailurePrefix)
}

// Chat handles a free-form conversational turn against the session history.
// The turn is recorded on the session only when the collaborator succeeds;
// failures become a diagnostic string.
func (p *Pipeline) Chat(ctx context.Context, session *Session, message string) string {
	raw, err := p.llm.CompleteWithLimit(ctx, buildChatPrompt(session.History, message), chatMaxTokens)
	if err != nil {
		return fmt.Sprintf("I encountered an error: %v. Please try again.", err)
	}

	reply := strings.TrimSpace(raw)
	session.Record(message, reply)
	return reply
}
