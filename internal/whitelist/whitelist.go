package whitelist

import (
	"strings"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"go.uber.org/zap"
)

// Checker is the whitelist gate. A sender or subject matching any trusted
// pattern forces a terminal not-spam verdict before any other stage runs.
type Checker struct {
	store  *rules.Store
	logger *zap.Logger
}

// NewChecker creates a new whitelist checker backed by the rule store
func NewChecker(store *rules.Store, logger *zap.Logger) *Checker {
	return &Checker{
		store:  store,
		logger: logger,
	}
}

// IsWhitelisted reports whether the sender or subject matches a trusted
// pattern. Inputs may be empty; matching is over lowercased text.
func (c *Checker) IsWhitelisted(senderEmail, subject string) bool {
	return Match(c.store.Snapshot(), senderEmail, subject, c.logger)
}

// Match runs the gate against an explicit snapshot so the classifier can
// evaluate a whole message against one consistent rule view.
func Match(snap *rules.Snapshot, senderEmail, subject string, logger *zap.Logger) bool {
	sender := strings.ToLower(senderEmail)
	subj := strings.ToLower(subject)

	for _, rule := range snap.WhitelistSenders {
		if rule.Re.MatchString(sender) {
			if logger != nil {
				logger.Debug("Sender is whitelisted",
					zap.String("sender", senderEmail),
					zap.String("pattern", rule.Raw))
			}
			return true
		}
	}

	for _, rule := range snap.WhitelistSubjects {
		if rule.Re.MatchString(subj) {
			if logger != nil {
				logger.Debug("Subject is whitelisted",
					zap.String("subject", subject),
					zap.String("pattern", rule.Raw))
			}
			return true
		}
	}

	return false
}
