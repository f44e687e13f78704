package classifier

import (
	"testing"

	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newControlledClassifier builds a classifier over an empty store with a
// known handful of rules, so weight arithmetic can be checked exactly.
func newControlledClassifier(t *testing.T) *Classifier {
	t.Helper()
	logger := zap.NewNop()
	store := rules.NewEmptyStore(logger, 256)

	for _, p := range []struct {
		ch      rules.Channel
		pattern string
	}{
		{rules.ChannelSender, `^spam@example\.com$`},
		{rules.ChannelSubject, `offre`},
		{rules.ChannelSubject, `promo`},
		{rules.ChannelBody, `cadeau`},
		{rules.ChannelBody, `bonus`},
	} {
		added, err := store.Append(p.ch, p.pattern)
		require.NoError(t, err)
		require.True(t, added)
	}

	return New(store, testSpamConfig(), utils.NewTextProcessor(logger), logger)
}

func TestScore_SenderChannelWeight(t *testing.T) {
	c := newControlledClassifier(t)

	v := c.Classify(&core.Email{SenderEmail: "spam@example.com"})

	require.Equal(t, core.VerdictScored, v.Kind)
	assert.InDelta(t, 0.40, v.Score, 1e-9)
	assert.True(t, v.IsSpam)
	assert.Contains(t, v.Reason(), "sender_pattern:")
}

func TestScore_SubjectStacking(t *testing.T) {
	c := newControlledClassifier(t)

	tests := []struct {
		name    string
		subject string
		want    float64
	}{
		{name: "single match", subject: "offre exclusive", want: 0.35},
		{name: "second match adds bonus", subject: "offre promo", want: 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Classify(&core.Email{
				SenderEmail: "contact@entreprise.fr",
				Subject:     tt.subject,
			})
			assert.InDelta(t, tt.want, v.Score, 1e-9)
			assert.True(t, v.IsSpam)
			assert.Contains(t, v.Reason(), "subject_pattern:")
		})
	}
}

func TestScore_BodyStackingStaysUnderThreshold(t *testing.T) {
	c := newControlledClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "contact@entreprise.fr",
		Body:        "un cadeau et un bonus",
	})

	// 0.25 + 0.05 lands below the 0.35 threshold: body evidence alone is
	// not enough to condemn a message.
	assert.InDelta(t, 0.30, v.Score, 1e-9)
	assert.False(t, v.IsSpam)
	assert.Contains(t, v.Reason(), "body_pattern:")
}

func TestScore_ClampsAtOne(t *testing.T) {
	c := newControlledClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "spam@example.com",
		Subject:     "offre promo",
		Body:        "cadeau bonus",
	})

	assert.Equal(t, 1.0, v.Score)
	assert.True(t, v.IsSpam)
}

func TestScore_FreemailShapeBonus(t *testing.T) {
	c := newControlledClassifier(t)

	tests := []struct {
		name   string
		sender string
		want   float64
	}{
		{name: "name plus digits on gmail", sender: "johnny22@gmail.com", want: 0.30},
		{name: "digits on unlisted provider", sender: "johnny22@pm.me", want: 0.0},
		{name: "dotted name on gmail", sender: "jean.dupont@gmail.com", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Classify(&core.Email{SenderEmail: tt.sender})
			assert.InDelta(t, tt.want, v.Score, 1e-9)
			assert.False(t, v.IsSpam)
		})
	}
}

func TestScore_SuspiciousNameBonus(t *testing.T) {
	logger := zap.NewNop()
	store := rules.NewEmptyStore(logger, 256)
	added, err := store.AppendSuspiciousName("marketing")
	require.NoError(t, err)
	require.True(t, added)

	c := New(store, testSpamConfig(), utils.NewTextProcessor(logger), logger)

	v := c.Classify(&core.Email{
		SenderEmail: "contact@entreprise.fr",
		SenderName:  "Marketing Guru",
	})

	assert.InDelta(t, 0.35, v.Score, 1e-9)
	assert.True(t, v.IsSpam)
	assert.Contains(t, v.Reason(), "suspicious_name:marketing")
}

func TestScore_SenderChannelDoesNotStack(t *testing.T) {
	logger := zap.NewNop()
	store := rules.NewEmptyStore(logger, 256)
	for _, p := range []string{`spam`, `@example\.com$`} {
		_, err := store.Append(rules.ChannelSender, p)
		require.NoError(t, err)
	}

	c := New(store, testSpamConfig(), utils.NewTextProcessor(logger), logger)

	// Both sender patterns match, but only the first counts.
	v := c.Classify(&core.Email{SenderEmail: "spam@example.com"})
	assert.InDelta(t, 0.40, v.Score, 1e-9)
}
