package classifier

import (
	"sort"
	"strings"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
)

// detectImpersonation checks whether the message claims to BE a known brand
// while the sender is not on that brand's official domains. Brand identity
// claims are high-value phishing bait: any non-official use is adversarial,
// so a hit is a terminal maximum-confidence verdict rather than a weighted
// signal. The sender address is part of the scanned text because spoofers
// put the brand token in the mailbox name itself (shopifymailer@gmail.com).
//
// Inputs must already be lowercased.
func detectImpersonation(snap *rules.Snapshot, sender, subject, name, body string) (bool, string) {
	fullText := sender + " " + subject + " " + name + " " + body

	// Brands are checked in sorted order so a message mentioning several
	// brands yields a stable verdict.
	brands := make([]string, 0, len(snap.BrandKeywords))
	for brand := range snap.BrandKeywords {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	for _, brand := range brands {
		mentioned := false
		for _, keyword := range snap.BrandKeywords[brand] {
			if strings.Contains(fullText, keyword) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			continue
		}

		official := false
		for _, domain := range snap.OfficialDomains[brand] {
			if strings.Contains(sender, domain) {
				official = true
				break
			}
		}
		if !official {
			return true, brand
		}
	}

	return false, ""
}
