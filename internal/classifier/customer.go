package classifier

import (
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
)

// detectRealCustomer checks whether the message contains first-person
// order-reference language. Someone asking about their own order is a
// customer and must never be suppressed as spam, even when the text
// incidentally trips weight-bearing keywords; someone offering to bring
// orders is a solicitor and falls through to the scorer.
//
// Runs after the impersonation check: a fake-brand email stays fake even if
// it also quotes an order number.
func detectRealCustomer(snap *rules.Snapshot, subject, body string) (bool, string) {
	fullText := subject + " " + body

	for _, rule := range snap.ClientPhrases {
		if rule.Re.MatchString(fullText) {
			return true, clip(rule.Raw, 25)
		}
	}

	return false, ""
}
