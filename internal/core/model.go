package core

import (
	"strings"
	"time"
)

// Email is the evidence tuple handed to classification. Headers are already
// MIME-decoded and the body is plain text; the classifier performs no I/O.
type Email struct {
	SenderEmail string
	SenderName  string
	To          []string
	Subject     string
	Body        string
	Headers     map[string][]string
}

// VerdictKind identifies which pipeline stage produced the verdict
type VerdictKind int

const (
	// VerdictScored is a graded verdict from the additive scorer
	VerdictScored VerdictKind = iota
	// VerdictWhitelisted is a terminal not-spam verdict from the whitelist gate
	VerdictWhitelisted
	// VerdictImpersonation is a terminal spam verdict from the brand check
	VerdictImpersonation
	// VerdictRealCustomer is a terminal not-spam verdict from the customer check
	VerdictRealCustomer
)

// Verdict is the tagged outcome of the rule pipeline. Internal logic matches
// on Kind; the (IsSpam, Score, Reason) triple is the boundary contract.
type Verdict struct {
	Kind    VerdictKind
	IsSpam  bool
	Score   float64
	Brand   string   // impersonated brand, set for VerdictImpersonation
	Pattern string   // matched phrase, set for VerdictRealCustomer
	Reasons []string // contributing rule tags, set for VerdictScored
}

// Reason collapses the verdict to its audit-trail string
func (v Verdict) Reason() string {
	switch v.Kind {
	case VerdictWhitelisted:
		return "whitelisted"
	case VerdictImpersonation:
		return "fake_brand:" + v.Brand
	case VerdictRealCustomer:
		return "real_client:" + v.Pattern
	default:
		if len(v.Reasons) == 0 {
			return "no_match"
		}
		return strings.Join(v.Reasons, "; ")
	}
}

// ClassificationResult represents the result of classifying one email
type ClassificationResult struct {
	IsSpam       bool
	Score        float64
	Reason       string
	Kind         VerdictKind
	AnalyzedAt   time.Time
	Engine       string
	ProcessingID string
}

// SecondOpinion is an LLM reviewer's take on a borderline email
type SecondOpinion struct {
	IsSpam     bool
	Score      float64
	Confidence float64
	Reason     string
	ModelUsed  string
}

// ReviewEntry caches a reviewer outcome per sender so borderline senders are
// not re-submitted to the LLM on every message
type ReviewEntry struct {
	SenderEmail string
	IsSpam      bool
	Score       float32
	Reason      string
	LastSeen    time.Time
	ExpiresAt   time.Time
}

// Routing categories consumed by the support dashboard after classification.
const (
	CategorySpam     = "spam"
	CategoryCustomer = "customer"
	CategoryReview   = "needs_review"
)

// InboundMessage is the ingestion-side record the verdict is stamped onto
type InboundMessage struct {
	SenderEmail string
	SenderName  string
	Subject     string
	Body        string
	ReceivedAt  time.Time

	IsSpam     bool
	SpamScore  float64
	SpamReason string
	Category   string
}
