package core

import (
	"context"
)

// Classifier runs the rule pipeline over one email. Implementations must be
// pure: no I/O, no error paths, safe for concurrent use against a rule
// store snapshot.
type Classifier interface {
	Classify(email *Email) Verdict
}

// ReviewClient asks an LLM for a second opinion on a borderline email
type ReviewClient interface {
	ReviewEmail(ctx context.Context, email *Email) (*SecondOpinion, error)
}

// VerdictCache stores reviewer outcomes keyed by sender
type VerdictCache interface {
	// Get retrieves a cached entry for a sender
	Get(ctx context.Context, senderEmail string) (*ReviewEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *ReviewEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, senderEmail string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
