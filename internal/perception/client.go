// Package perception wraps the generation collaborators (LLM providers)
// behind one small interface. Providers differ in SDK and wire format but
// the pipeline only ever needs "prompt in, text out" with an output budget.
package perception

import "context"

// LLMClient defines the interface for generation collaborators.
type LLMClient interface {
	// Complete sends a prompt with the provider's default output budget.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithLimit sends a prompt with an explicit cap on output
	// tokens. maxOutputTokens <= 0 means the provider default.
	CompleteWithLimit(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// minRequestSpacing is the minimum gap between consecutive calls to one
// provider; free-tier endpoints throttle at roughly 2 requests/second.
const minRequestSpacingMillis = 600
