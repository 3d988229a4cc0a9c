package research

import "errors"

var (
	// ErrNoStructuredData means every JSON extraction tier failed on the
	// collaborator's plan response.
	ErrNoStructuredData = errors.New("no structured data in collaborator response")

	// ErrPlanIncomplete means the parsed plan violates the
	// required-section contract. Partial plans are never accepted:
	// downstream section editing assumes the contract holds.
	ErrPlanIncomplete = errors.New("generated plan incomplete")

	// ErrCollaborator wraps a failed collaborator call (network, auth,
	// quota). Stages return it instead of letting transport errors escape
	// raw.
	ErrCollaborator = errors.New("collaborator call failed")
)
