package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClassifier struct {
	verdict Verdict
}

func (s *stubClassifier) Classify(email *Email) Verdict {
	return s.verdict
}

type stubReviewer struct {
	opinion *SecondOpinion
	err     error
	calls   int
}

func (s *stubReviewer) ReviewEmail(ctx context.Context, email *Email) (*SecondOpinion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.opinion, nil
}

type stubCache struct {
	entries map[string]*ReviewEntry
	sets    []*ReviewEntry
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*ReviewEntry)}
}

func (s *stubCache) Get(ctx context.Context, senderEmail string) (*ReviewEntry, error) {
	entry, ok := s.entries[senderEmail]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (s *stubCache) Set(ctx context.Context, entry *ReviewEntry) error {
	s.sets = append(s.sets, entry)
	s.entries[entry.SenderEmail] = entry
	return nil
}

func (s *stubCache) Delete(ctx context.Context, senderEmail string) error {
	delete(s.entries, senderEmail)
	return nil
}

func (s *stubCache) Cleanup(ctx context.Context) error { return nil }

func scoredVerdict(score float64, spam bool) Verdict {
	return Verdict{
		Kind:    VerdictScored,
		IsSpam:  spam,
		Score:   score,
		Reasons: []string{"subject_pattern:offre"},
	}
}

func reviewService(classifier Classifier, reviewer ReviewClient, cache VerdictCache) *ClassifierService {
	return NewClassifierService(classifier, reviewer, cache, zap.NewNop(),
		cache != nil, time.Hour, 0.35, reviewer != nil, 0.25)
}

func TestAnalyzeEmail_RuleVerdictPassesThrough(t *testing.T) {
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.75, true)}, nil, nil)

	result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
	require.NoError(t, err)

	assert.True(t, result.IsSpam)
	assert.Equal(t, 0.75, result.Score)
	assert.Equal(t, "rules", result.Engine)
	assert.Equal(t, "subject_pattern:offre", result.Reason)
	assert.NotEmpty(t, result.ProcessingID)
}

func TestAnalyzeEmail_BorderlineScoreTriggersReview(t *testing.T) {
	reviewer := &stubReviewer{opinion: &SecondOpinion{
		IsSpam: true,
		Score:  0.8,
		Reason: "unsolicited agency pitch",
	}}
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.30, false)}, reviewer, nil)

	result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, reviewer.calls)
	assert.True(t, result.IsSpam)
	assert.Equal(t, 0.8, result.Score)
	assert.Equal(t, "rules+llm", result.Engine)
	assert.Contains(t, result.Reason, "llm:unsolicited agency pitch")
}

func TestAnalyzeEmail_ReviewerHamOpinionKeepsVerdict(t *testing.T) {
	reviewer := &stubReviewer{opinion: &SecondOpinion{IsSpam: false, Score: 0.1}}
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.30, false)}, reviewer, nil)

	result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
	require.NoError(t, err)

	assert.False(t, result.IsSpam)
	assert.Equal(t, 0.30, result.Score)
	assert.Equal(t, "rules+llm", result.Engine)
}

func TestAnalyzeEmail_ReviewerErrorFailsOpen(t *testing.T) {
	reviewer := &stubReviewer{err: errors.New("model timeout")}
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.30, false)}, reviewer, nil)

	result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, reviewer.calls)
	assert.False(t, result.IsSpam)
	assert.Equal(t, 0.30, result.Score)
	assert.Equal(t, "rules", result.Engine)
}

func TestAnalyzeEmail_ScoresOutsideBandSkipReview(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		spam  bool
	}{
		{name: "confident ham", score: 0.10, spam: false},
		{name: "already over threshold", score: 0.40, spam: true},
		{name: "exactly at threshold", score: 0.35, spam: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviewer := &stubReviewer{opinion: &SecondOpinion{IsSpam: true, Score: 0.9}}
			svc := reviewService(&stubClassifier{verdict: scoredVerdict(tt.score, tt.spam)}, reviewer, nil)

			result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
			require.NoError(t, err)

			assert.Equal(t, 0, reviewer.calls)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, "rules", result.Engine)
		})
	}
}

func TestAnalyzeEmail_TerminalVerdictsNeverReviewed(t *testing.T) {
	verdicts := []Verdict{
		{Kind: VerdictWhitelisted},
		{Kind: VerdictImpersonation, IsSpam: true, Score: 1.0, Brand: "shopify"},
		{Kind: VerdictRealCustomer, Pattern: `ma\s*commande`},
	}

	for _, v := range verdicts {
		reviewer := &stubReviewer{opinion: &SecondOpinion{IsSpam: true, Score: 0.9}}
		svc := reviewService(&stubClassifier{verdict: v}, reviewer, nil)

		result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "x@y.com"})
		require.NoError(t, err)

		assert.Equal(t, 0, reviewer.calls)
		assert.Equal(t, v.IsSpam, result.IsSpam)
		assert.Equal(t, "rules", result.Engine)
	}
}

func TestAnalyzeEmail_CacheHitSkipsReviewer(t *testing.T) {
	reviewer := &stubReviewer{opinion: &SecondOpinion{IsSpam: false}}
	cache := newStubCache()
	cache.entries["seen@gmail.com"] = &ReviewEntry{
		SenderEmail: "seen@gmail.com",
		IsSpam:      true,
		Score:       0.7,
		Reason:      "known cold outreach sender",
	}
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.30, false)}, reviewer, cache)

	result, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "seen@gmail.com"})
	require.NoError(t, err)

	assert.Equal(t, 0, reviewer.calls)
	assert.True(t, result.IsSpam)
	assert.InDelta(t, 0.7, result.Score, 1e-6)
	assert.Equal(t, "rules+cache", result.Engine)
	assert.Contains(t, result.Reason, "llm:known cold outreach sender")
}

func TestAnalyzeEmail_OpinionCachedOnMiss(t *testing.T) {
	reviewer := &stubReviewer{opinion: &SecondOpinion{
		IsSpam: true,
		Score:  0.8,
		Reason: "agency pitch",
	}}
	cache := newStubCache()
	svc := reviewService(&stubClassifier{verdict: scoredVerdict(0.30, false)}, reviewer, cache)

	_, err := svc.AnalyzeEmail(context.Background(), &Email{SenderEmail: "new@gmail.com"})
	require.NoError(t, err)

	require.Len(t, cache.sets, 1)
	entry := cache.sets[0]
	assert.Equal(t, "new@gmail.com", entry.SenderEmail)
	assert.True(t, entry.IsSpam)
	assert.InDelta(t, 0.8, float64(entry.Score), 1e-6)
	assert.True(t, entry.ExpiresAt.After(time.Now()))
}

func TestAnnotateMessage_Routing(t *testing.T) {
	tests := []struct {
		name    string
		verdict Verdict
		want    string
	}{
		{name: "spam routes to spam", verdict: scoredVerdict(0.9, true), want: CategorySpam},
		{name: "real customer routes to customer", verdict: Verdict{Kind: VerdictRealCustomer, Pattern: `ma\s*commande`}, want: CategoryCustomer},
		{name: "whitelisted routes to review queue", verdict: Verdict{Kind: VerdictWhitelisted}, want: CategoryReview},
		{name: "low score routes to review queue", verdict: scoredVerdict(0.1, false), want: CategoryReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := reviewService(&stubClassifier{verdict: tt.verdict}, nil, nil)

			msg := &InboundMessage{SenderEmail: "x@y.com", Subject: "hello"}
			require.NoError(t, svc.AnnotateMessage(context.Background(), msg))

			assert.Equal(t, tt.want, msg.Category)
			assert.Equal(t, tt.verdict.IsSpam, msg.IsSpam)
			assert.Equal(t, tt.verdict.Score, msg.SpamScore)
		})
	}
}

func TestIsSpam_Threshold(t *testing.T) {
	svc := reviewService(&stubClassifier{}, nil, nil)

	assert.True(t, svc.IsSpam(&ClassificationResult{IsSpam: true, Score: 0.1}))
	assert.True(t, svc.IsSpam(&ClassificationResult{Score: 0.35}))
	assert.False(t, svc.IsSpam(&ClassificationResult{Score: 0.34}))
}
