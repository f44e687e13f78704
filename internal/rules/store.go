package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Channel identifies the evidence category a pattern is matched against
type Channel string

const (
	ChannelSender  Channel = "sender"
	ChannelSubject Channel = "subject"
	ChannelBody    Channel = "body"
)

var (
	// ErrUnknownChannel is returned for a channel the store does not track
	ErrUnknownChannel = errors.New("unknown rule channel")
	// ErrEmptyPattern is returned when an empty pattern is appended
	ErrEmptyPattern = errors.New("empty pattern")
	// ErrPatternTooLong is returned when a pattern exceeds the length cap
	ErrPatternTooLong = errors.New("pattern exceeds maximum length")
)

// Rule is a compiled pattern together with its source text. The source text
// is the dedup key and what reason tags are derived from.
type Rule struct {
	Raw string
	Re  *regexp.Regexp
}

// Snapshot is an immutable view of the store consulted during one
// classification call. Concurrent appends produce a new snapshot; readers
// holding an old one are unaffected.
type Snapshot struct {
	Sender  []Rule
	Subject []Rule
	Body    []Rule

	WhitelistSenders  []Rule
	WhitelistSubjects []Rule
	ClientPhrases     []Rule

	OfficialDomains map[string][]string
	BrandKeywords   map[string][]string
	PlatformDomains []string
	SuspiciousNames []string
}

// Store owns every pattern table consulted during classification. The three
// spam channels and the suspicious-name list are appendable at runtime (the
// learner's apply step); all mutation goes through validation and dedup, and
// reads see copy-on-write snapshots.
type Store struct {
	mu            sync.RWMutex
	snap          *Snapshot
	maxPatternLen int
	logger        *zap.Logger
}

// NewStore creates a rule store loaded with the built-in tables
func NewStore(logger *zap.Logger, maxPatternLen int) (*Store, error) {
	s := NewEmptyStore(logger, maxPatternLen)

	sender, err := compileAll(defaultSenderPatterns)
	if err != nil {
		return nil, fmt.Errorf("sender patterns: %w", err)
	}
	subject, err := compileAll(defaultSubjectPatterns)
	if err != nil {
		return nil, fmt.Errorf("subject patterns: %w", err)
	}
	body, err := compileAll(defaultBodyPatterns)
	if err != nil {
		return nil, fmt.Errorf("body patterns: %w", err)
	}
	wlSenders, err := compileAll(whitelistSenders)
	if err != nil {
		return nil, fmt.Errorf("whitelist sender patterns: %w", err)
	}
	wlSubjects, err := compileAll(whitelistSubjects)
	if err != nil {
		return nil, fmt.Errorf("whitelist subject patterns: %w", err)
	}
	client, err := compileAll(clientPhrases)
	if err != nil {
		return nil, fmt.Errorf("client phrases: %w", err)
	}

	s.snap = &Snapshot{
		Sender:            sender,
		Subject:           subject,
		Body:              body,
		WhitelistSenders:  wlSenders,
		WhitelistSubjects: wlSubjects,
		ClientPhrases:     client,
		OfficialDomains:   officialDomains,
		BrandKeywords:     brandKeywords,
		PlatformDomains:   platformDomains,
		SuspiciousNames:   suspiciousNames,
	}
	return s, nil
}

// NewEmptyStore creates a store with no rules at all. Everything classifies
// as not-spam with reason no_match; this is the fail-safe configuration when
// the rule tables cannot be loaded.
func NewEmptyStore(logger *zap.Logger, maxPatternLen int) *Store {
	return &Store{
		snap: &Snapshot{
			OfficialDomains: map[string][]string{},
			BrandKeywords:   map[string][]string{},
		},
		maxPatternLen: maxPatternLen,
		logger:        logger,
	}
}

// Snapshot returns the current immutable view of the store
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Append validates and inserts a pattern into a spam channel. It returns
// false when the pattern is already present; re-applying learned patterns is
// idempotent. Invalid patterns are rejected here, at load time, so matching
// never fails per message.
func (s *Store) Append(ch Channel, pattern string) (bool, error) {
	rule, err := s.validate(pattern)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.snap
	switch ch {
	case ChannelSender:
		if containsRaw(next.Sender, pattern) {
			return false, nil
		}
		next.Sender = appendCopy(next.Sender, rule)
	case ChannelSubject:
		if containsRaw(next.Subject, pattern) {
			return false, nil
		}
		next.Subject = appendCopy(next.Subject, rule)
	case ChannelBody:
		if containsRaw(next.Body, pattern) {
			return false, nil
		}
		next.Body = appendCopy(next.Body, rule)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	s.snap = &next

	if s.logger != nil {
		s.logger.Info("Rule appended",
			zap.String("channel", string(ch)),
			zap.String("pattern", pattern))
	}
	return true, nil
}

// AppendSuspiciousName inserts a word into the suspicious display-name list
func (s *Store) AppendSuspiciousName(word string) (bool, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false, ErrEmptyPattern
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.snap.SuspiciousNames {
		if existing == word {
			return false, nil
		}
	}
	next := *s.snap
	names := make([]string, len(next.SuspiciousNames), len(next.SuspiciousNames)+1)
	copy(names, next.SuspiciousNames)
	next.SuspiciousNames = append(names, word)
	s.snap = &next

	if s.logger != nil {
		s.logger.Info("Suspicious name appended", zap.String("word", word))
	}
	return true, nil
}

// PatternCount returns the number of rules in a spam channel
func (s *Store) PatternCount(ch Channel) int {
	snap := s.Snapshot()
	switch ch {
	case ChannelSender:
		return len(snap.Sender)
	case ChannelSubject:
		return len(snap.Subject)
	case ChannelBody:
		return len(snap.Body)
	}
	return 0
}

// validate compiles the pattern and applies the length cap. Go's regexp is
// RE2, so admitted patterns match in linear time; the length cap plus input
// bounding upstream covers the rest of the hostile-input surface.
func (s *Store) validate(pattern string) (Rule, error) {
	if strings.TrimSpace(pattern) == "" {
		return Rule{}, ErrEmptyPattern
	}
	if s.maxPatternLen > 0 && len(pattern) > s.maxPatternLen {
		return Rule{}, fmt.Errorf("%w: %d bytes", ErrPatternTooLong, len(pattern))
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return Rule{Raw: pattern, Re: re}, nil
}

func compileAll(patterns []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		rules = append(rules, Rule{Raw: p, Re: re})
	}
	return rules, nil
}

func containsRaw(rules []Rule, pattern string) bool {
	for _, r := range rules {
		if r.Raw == pattern {
			return true
		}
	}
	return false
}

func appendCopy(rules []Rule, r Rule) []Rule {
	next := make([]Rule, len(rules), len(rules)+1)
	copy(next, rules)
	return append(next, r)
}
