package classifier

import (
	"strings"

	"github.com/avenaparisshop/avena-sav-app/internal/config"
	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
	"github.com/avenaparisshop/avena-sav-app/internal/whitelist"
	"go.uber.org/zap"
)

// Classifier runs the rule pipeline: whitelist gate, brand impersonation,
// real-customer override, then the additive scorer. Each stage can
// short-circuit with a terminal verdict; only the scorer grades.
//
// Classify is pure over its inputs and the rule store snapshot taken at the
// start of the call, so it is safe to run concurrently with learner appends.
type Classifier struct {
	store     *rules.Store
	cfg       config.SpamConfig
	shapes    []rules.Rule
	processor *utils.TextProcessor
	logger    *zap.Logger
}

// New creates a classifier over the given rule store
func New(store *rules.Store, cfg config.SpamConfig, processor *utils.TextProcessor, logger *zap.Logger) *Classifier {
	return &Classifier{
		store:     store,
		cfg:       cfg,
		shapes:    rules.FreemailLocalShapes(),
		processor: processor,
		logger:    logger,
	}
}

// Classify produces a verdict for one email. All code paths are total over
// the string inputs; empty fields are simply empty strings.
func (c *Classifier) Classify(email *core.Email) core.Verdict {
	snap := c.store.Snapshot()

	sender := c.prepare(email.SenderEmail)
	name := c.prepare(email.SenderName)
	subject := c.prepare(email.Subject)
	body := c.prepare(email.Body)

	if whitelist.Match(snap, sender, subject, c.logger) {
		return core.Verdict{Kind: core.VerdictWhitelisted}
	}

	if fake, brand := detectImpersonation(snap, sender, subject, name, body); fake {
		c.logger.Warn("Brand impersonation detected",
			zap.String("sender", email.SenderEmail),
			zap.String("brand", brand))
		return core.Verdict{
			Kind:   core.VerdictImpersonation,
			IsSpam: true,
			Score:  1.0,
			Brand:  brand,
		}
	}

	if client, pattern := detectRealCustomer(snap, subject, body); client {
		c.logger.Debug("Real customer detected",
			zap.String("sender", email.SenderEmail),
			zap.String("pattern", pattern))
		return core.Verdict{
			Kind:    core.VerdictRealCustomer,
			Pattern: pattern,
		}
	}

	score, reasons := c.score(snap, sender, name, subject, body)
	return core.Verdict{
		Kind:    core.VerdictScored,
		IsSpam:  score >= c.cfg.Threshold,
		Score:   score,
		Reasons: reasons,
	}
}

// prepare normalizes to NFC, bounds the scan size and lowercases. Bounding
// happens before any regex runs so hostile inputs cannot inflate scan time.
func (c *Classifier) prepare(text string) string {
	text = c.processor.Normalize(text)
	text = c.processor.BoundForScan(text, c.cfg.MaxScanBytes)
	return strings.ToLower(text)
}

// clip shortens a pattern for the reason trail
func clip(pattern string, max int) string {
	runes := []rune(pattern)
	if len(runes) <= max {
		return pattern
	}
	return string(runes[:max])
}
