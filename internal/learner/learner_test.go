package learner

import (
	"testing"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCorpus() []Message {
	return []Message{
		{
			SenderEmail: "growth@spamdomain.com",
			SenderName:  "Digital Growth",
			Subject:     "Collaboration pour votre boutique",
		},
		{
			SenderEmail: "sales@spamdomain.com",
			SenderName:  "Digital Sales Pro",
			Subject:     "Collaboration opportunity for your store",
		},
		{
			SenderEmail: "expert@seoland.io",
			SenderName:  "SEO Pro",
			Subject:     "Collaboration and seo help",
		},
	}
}

func TestLearn_RetainsFrequentCandidates(t *testing.T) {
	l := New(rules.NewEmptyStore(zap.NewNop(), 256), zap.NewNop())

	candidates := l.Learn(testCorpus())

	require.Len(t, candidates.Domains, 1)
	assert.Equal(t, "spamdomain.com", candidates.Domains[0].Value)
	assert.Equal(t, 2, candidates.Domains[0].Count)

	// "collaboration" recurs in every subject; "seo" is below the length
	// floor and "boutique" below the frequency floor.
	values := candidateValues(candidates.SubjectWords)
	assert.Contains(t, values, "collaboration")
	assert.NotContains(t, values, "seo")
	assert.NotContains(t, values, "boutique")

	names := candidateValues(candidates.NameWords)
	assert.Contains(t, names, "digital")
	assert.NotContains(t, names, "sales")
}

func TestLearn_ExplicitDomainOverridesSender(t *testing.T) {
	l := New(rules.NewEmptyStore(zap.NewNop(), 256), zap.NewNop())

	candidates := l.Learn([]Message{
		{SenderEmail: "a@one.com", Domain: "Forced.example"},
		{SenderEmail: "b@two.com", Domain: "forced.example"},
	})

	require.Len(t, candidates.Domains, 1)
	assert.Equal(t, "forced.example", candidates.Domains[0].Value)
}

func TestLearn_OrdersByFrequencyThenValue(t *testing.T) {
	l := New(rules.NewEmptyStore(zap.NewNop(), 256), zap.NewNop())

	corpus := []Message{
		{SenderEmail: "x@beta.net"},
		{SenderEmail: "y@beta.net"},
		{SenderEmail: "z@beta.net"},
		{SenderEmail: "x@alpha.net"},
		{SenderEmail: "y@alpha.net"},
		{SenderEmail: "x@gamma.net"},
		{SenderEmail: "y@gamma.net"},
	}

	candidates := l.Learn(corpus)

	require.Len(t, candidates.Domains, 3)
	assert.Equal(t, "beta.net", candidates.Domains[0].Value)
	assert.Equal(t, "alpha.net", candidates.Domains[1].Value)
	assert.Equal(t, "gamma.net", candidates.Domains[2].Value)
}

func TestApply_CommitsCandidatesToStore(t *testing.T) {
	store := rules.NewEmptyStore(zap.NewNop(), 256)
	l := New(store, zap.NewNop())

	applied, err := l.Apply(&Candidates{
		Domains:      []Candidate{{Value: "spamdomain.com", Count: 2}},
		SubjectWords: []Candidate{{Value: "collaboration", Count: 3}},
		NameWords:    []Candidate{{Value: "digital", Count: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{`@.*spamdomain\.com$`}, applied.SenderPatterns)
	assert.Equal(t, []string{`\bcollaboration\b`}, applied.SubjectPatterns)
	assert.Equal(t, []string{"digital"}, applied.NameWords)
	assert.Equal(t, 3, applied.Total())

	snap := store.Snapshot()
	require.Len(t, snap.Sender, 1)
	assert.True(t, snap.Sender[0].Re.MatchString("anyone@spamdomain.com"))
	require.Len(t, snap.Subject, 1)
	assert.True(t, snap.Subject[0].Re.MatchString("collaboration proposal"))
	assert.Contains(t, snap.SuspiciousNames, "digital")
}

func TestApply_SkipsStopWords(t *testing.T) {
	store := rules.NewEmptyStore(zap.NewNop(), 256)
	l := New(store, zap.NewNop())

	applied, err := l.Apply(&Candidates{
		SubjectWords: []Candidate{{Value: "votre", Count: 10}},
		NameWords:    []Candidate{{Value: "with", Count: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, applied.Total())
	snap := store.Snapshot()
	assert.Empty(t, snap.Subject)
	assert.Empty(t, snap.SuspiciousNames)
}

func TestApply_ReapplyIsNoOp(t *testing.T) {
	store := rules.NewEmptyStore(zap.NewNop(), 256)
	l := New(store, zap.NewNop())

	candidates := &Candidates{
		Domains:      []Candidate{{Value: "spamdomain.com", Count: 2}},
		SubjectWords: []Candidate{{Value: "collaboration", Count: 3}},
		NameWords:    []Candidate{{Value: "digital", Count: 2}},
	}

	first, err := l.Apply(candidates)
	require.NoError(t, err)
	require.Equal(t, 3, first.Total())

	second, err := l.Apply(candidates)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total())
}

func candidateValues(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Value)
	}
	return out
}
