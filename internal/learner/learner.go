package learner

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"go.uber.org/zap"
)

// Frequency floors for candidate retention. A domain seen twice in the junk
// folder is worth proposing; a subject word needs to recur more before it
// stops being noise.
const (
	minDomainCount      = 2
	minSubjectWordCount = 3
	minNameWordCount    = 2

	minSubjectWordLen = 4
	minNameWordLen    = 3
)

// stopWords are too generic to become rules; applying them would flag
// nearly every message.
var stopWords = map[string]struct{}{
	"your": {}, "with": {}, "this": {}, "that": {}, "from": {}, "have": {},
	"will": {}, "about": {}, "what": {}, "when": {}, "here": {}, "there": {},
	"would": {}, "could": {}, "just": {}, "like": {}, "more": {}, "some": {},
	"the": {}, "and": {}, "you": {}, "for": {}, "are": {}, "not": {},
	"our": {}, "all": {}, "out": {}, "get": {}, "now": {}, "new": {},
	"pour": {}, "vous": {}, "avec": {}, "votre": {}, "dans": {}, "les": {},
	"des": {}, "sur": {}, "une": {}, "est": {}, "nous": {}, "notre": {},
	"plus": {}, "mais": {}, "bien": {}, "tout": {}, "être": {},
}

// Message is one row of a confirmed-spam corpus, e.g. an export of the
// mailbox's junk folder
type Message struct {
	SenderEmail string
	SenderName  string
	Subject     string
	Domain      string
}

// Candidate is a proposed pattern source with its corpus frequency
type Candidate struct {
	Value string
	Count int
}

// Candidates holds the learner's proposals. Nothing is inserted into the
// rule store until an explicit Apply: the learner proposes, an operator
// commits.
type Candidates struct {
	Domains      []Candidate
	SubjectWords []Candidate
	NameWords    []Candidate
}

// Learner proposes new rules from a confirmed-spam corpus
type Learner struct {
	store  *rules.Store
	logger *zap.Logger
}

// New creates a learner over the given rule store
func New(store *rules.Store, logger *zap.Logger) *Learner {
	return &Learner{
		store:  store,
		logger: logger,
	}
}

// Learn analyzes a corpus of known-spam messages and returns candidate
// domains, subject words and display-name words. It never mutates the
// rule store.
func (l *Learner) Learn(corpus []Message) *Candidates {
	domainCounts := make(map[string]int)
	subjectCounts := make(map[string]int)
	nameCounts := make(map[string]int)

	for _, msg := range corpus {
		domain := strings.ToLower(msg.Domain)
		if domain == "" {
			domain = senderDomain(msg.SenderEmail)
		}
		if domain != "" {
			domainCounts[domain]++
		}

		for _, word := range words(msg.Subject, minSubjectWordLen) {
			subjectCounts[word]++
		}
		for _, word := range words(msg.SenderName, minNameWordLen) {
			nameCounts[word]++
		}
	}

	candidates := &Candidates{
		Domains:      retain(domainCounts, minDomainCount),
		SubjectWords: retain(subjectCounts, minSubjectWordCount),
		NameWords:    retain(nameCounts, minNameWordCount),
	}

	l.logger.Info("Corpus analysis complete",
		zap.Int("messages", len(corpus)),
		zap.Int("domain_candidates", len(candidates.Domains)),
		zap.Int("subject_candidates", len(candidates.SubjectWords)),
		zap.Int("name_candidates", len(candidates.NameWords)))

	return candidates
}

// Applied records what an Apply call actually inserted, so callers can
// persist the overlay
type Applied struct {
	SenderPatterns  []string
	SubjectPatterns []string
	NameWords       []string
}

// Total returns the number of rules added
func (a *Applied) Total() int {
	return len(a.SenderPatterns) + len(a.SubjectPatterns) + len(a.NameWords)
}

// Apply commits accepted candidates to the rule store. Domains become
// sender-channel patterns anchored on the domain suffix, subject words
// become word-boundary subject patterns, and name words join the suspicious
// display-name list. Re-applying known candidates is a no-op: the store
// dedups on insert.
func (l *Learner) Apply(candidates *Candidates) (*Applied, error) {
	applied := &Applied{}

	for _, c := range candidates.Domains {
		pattern := `@.*` + regexp.QuoteMeta(c.Value) + `$`
		added, err := l.store.Append(rules.ChannelSender, pattern)
		if err != nil {
			return applied, err
		}
		if added {
			applied.SenderPatterns = append(applied.SenderPatterns, pattern)
		}
	}

	for _, c := range candidates.SubjectWords {
		if _, stop := stopWords[c.Value]; stop {
			continue
		}
		pattern := `\b` + regexp.QuoteMeta(c.Value) + `\b`
		added, err := l.store.Append(rules.ChannelSubject, pattern)
		if err != nil {
			return applied, err
		}
		if added {
			applied.SubjectPatterns = append(applied.SubjectPatterns, pattern)
		}
	}

	for _, c := range candidates.NameWords {
		if _, stop := stopWords[c.Value]; stop {
			continue
		}
		added, err := l.store.AppendSuspiciousName(c.Value)
		if err != nil {
			return applied, err
		}
		if added {
			applied.NameWords = append(applied.NameWords, c.Value)
		}
	}

	l.logger.Info("Learned rules applied", zap.Int("added", applied.Total()))
	return applied, nil
}

// words extracts lowercased alphabetic words of at least minLen runes
func words(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			out = append(out, f)
		}
	}
	return out
}

func senderDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// retain keeps entries at or above the frequency floor, most frequent
// first; ties break alphabetically so proposals are stable across runs
func retain(counts map[string]int, min int) []Candidate {
	out := make([]Candidate, 0, len(counts))
	for value, count := range counts {
		if count >= min {
			out = append(out, Candidate{Value: value, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
