package classifier

import (
	"strings"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
)

// score combines the three pattern channels with the suspicious-name and
// freemail heuristics into a bounded confidence score. The sender channel
// stops at its first match; subject and body scan every pattern, with a
// smaller bonus for each match past the first. Only reached once the gate
// stages have declined to rule.
func (c *Classifier) score(snap *rules.Snapshot, sender, name, subject, body string) (float64, []string) {
	w := c.cfg.Weights
	var score float64
	var reasons []string

	for _, rule := range snap.Sender {
		if rule.Re.MatchString(sender) {
			score += w.Sender
			reasons = append(reasons, "sender_pattern:"+clip(rule.Raw, 20))
			break
		}
	}

	subjectMatches := 0
	for _, rule := range snap.Subject {
		if rule.Re.MatchString(subject) {
			subjectMatches++
			if subjectMatches == 1 {
				score += w.SubjectFirst
				reasons = append(reasons, "subject_pattern:"+clip(rule.Raw, 20))
			} else {
				score += w.SubjectExtra
			}
		}
	}

	bodyMatches := 0
	for _, rule := range snap.Body {
		if rule.Re.MatchString(body) {
			bodyMatches++
			if bodyMatches == 1 {
				score += w.BodyFirst
				reasons = append(reasons, "body_pattern:"+clip(rule.Raw, 20))
			} else {
				score += w.BodyExtra
			}
		}
	}

	// The whitelist gate already ran, so a display name matching a
	// suspicious word only escapes the bonus when the sender really is on a
	// platform domain.
	for _, word := range snap.SuspiciousNames {
		if strings.Contains(name, word) {
			if !onPlatformDomain(snap, sender) {
				score += w.SuspiciousName
				reasons = append(reasons, "suspicious_name:"+word)
			}
			break
		}
	}

	if c.freemailSuspect(sender) {
		score += w.Freemail
		reasons = append(reasons, "freemail_suspect_pattern")
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, reasons
}

// freemailSuspect reports whether the sender is a consumer free-mail
// address whose local part has the name+digits cold-outreach shape
func (c *Classifier) freemailSuspect(sender string) bool {
	at := strings.LastIndex(sender, "@")
	if at < 0 {
		return false
	}
	local, domain := sender[:at], sender[at+1:]

	freemail := false
	for _, d := range c.cfg.FreemailDomains {
		if domain == d {
			freemail = true
			break
		}
	}
	if !freemail {
		return false
	}

	for _, shape := range c.shapes {
		if shape.Re.MatchString(local) {
			return true
		}
	}
	return false
}

func onPlatformDomain(snap *rules.Snapshot, sender string) bool {
	for _, domain := range snap.PlatformDomains {
		if strings.Contains(sender, domain) {
			return true
		}
	}
	return false
}
