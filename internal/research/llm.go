package research

import "context"

// LLMClient is the minimal collaborator interface the pipeline needs.
// Mirrors perception.LLMClient to avoid an import cycle; perception clients
// satisfy it directly.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithLimit(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// Per-stage output budgets. Synthesis and plan generation produce long
// structured text; regeneration and chat replace a single section or turn.
const (
	synthesisMaxTokens  = 4096
	planMaxTokens       = 8192
	regenerateMaxTokens = 2048
	chatMaxTokens       = 2048
)
