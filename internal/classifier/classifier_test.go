package classifier

import (
	"testing"

	"github.com/avenaparisshop/avena-sav-app/internal/config"
	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSpamConfig() config.SpamConfig {
	return config.SpamConfig{
		Threshold: 0.35,
		Weights: config.Weights{
			Sender:         0.40,
			SubjectFirst:   0.35,
			SubjectExtra:   0.10,
			BodyFirst:      0.25,
			BodyExtra:      0.05,
			SuspiciousName: 0.35,
			Freemail:       0.30,
		},
		FreemailDomains: []string{"gmail.com", "yahoo.fr", "hotmail.com", "outlook.com"},
		MaxScanBytes:    16384,
	}
}

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	logger := zap.NewNop()
	store, err := rules.NewStore(logger, 256)
	require.NoError(t, err)
	return New(store, testSpamConfig(), utils.NewTextProcessor(logger), logger)
}

func TestClassify_FakeBrandSupport(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "contact.shopifymailer@gmail.com",
		Subject:     "Account suspended",
	})

	assert.Equal(t, core.VerdictImpersonation, v.Kind)
	assert.True(t, v.IsSpam)
	assert.Equal(t, 1.0, v.Score)
	assert.Equal(t, "fake_brand:shopify", v.Reason())
}

func TestClassify_RealCustomerOverride(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "client123@yahoo.fr",
		Subject:     "Où est ma commande #58391",
		Body:        "Bonjour, je n'ai toujours pas reçu ma commande...",
	})

	assert.Equal(t, core.VerdictRealCustomer, v.Kind)
	assert.False(t, v.IsSpam)
	assert.Equal(t, 0.0, v.Score)
	assert.Contains(t, v.Reason(), "real_client:")
}

func TestClassify_OfficialSenderIsWhitelisted(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "notifications@facebookmail.com",
		Subject:     "Your weekly Page summary",
	})

	assert.Equal(t, core.VerdictWhitelisted, v.Kind)
	assert.False(t, v.IsSpam)
	assert.Equal(t, 0.0, v.Score)
	assert.Equal(t, "whitelisted", v.Reason())
}

func TestClassify_SolicitationIsScoredSpam(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "horlarfydigital128@gmail.com",
		Subject:     "Quick question about your store",
		Body:        "I specialize in boosting Shopify stores, would you be open to a call?",
	})

	// Name-dropping a platform in the pitch is solicitation, not
	// impersonation: nobody is claiming to be the platform.
	assert.Equal(t, core.VerdictScored, v.Kind)
	assert.True(t, v.IsSpam)
	assert.GreaterOrEqual(t, v.Score, 0.35)
	assert.LessOrEqual(t, v.Score, 1.0)
	assert.NotEqual(t, "no_match", v.Reason())
}

func TestClassify_BenignEmailIsNoMatch(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "jean@entreprise.fr",
	})

	assert.Equal(t, core.VerdictScored, v.Kind)
	assert.False(t, v.IsSpam)
	assert.Equal(t, 0.0, v.Score)
	assert.Equal(t, "no_match", v.Reason())
}

func TestClassify_WhitelistBeatsEverything(t *testing.T) {
	c := newDefaultClassifier(t)

	// Spam-looking subject and body from a whitelisted sender.
	v := c.Classify(&core.Email{
		SenderEmail: "partner@facebookmail.com",
		Subject:     "Quick question about your store",
		Body:        "We specialize in boosting your sales, quick question for you",
	})

	assert.Equal(t, core.VerdictWhitelisted, v.Kind)
	assert.False(t, v.IsSpam)
	assert.Equal(t, 0.0, v.Score)
}

func TestClassify_WhitelistBeatsImpersonation(t *testing.T) {
	c := newDefaultClassifier(t)

	v := c.Classify(&core.Email{
		SenderEmail: "team@shopify.com",
		Subject:     "Shopify Support: account review",
	})

	assert.Equal(t, core.VerdictWhitelisted, v.Kind)
	assert.False(t, v.IsSpam)
}

func TestClassify_ImpersonationBeatsRealCustomer(t *testing.T) {
	c := newDefaultClassifier(t)

	// A fake support email stays fake even when it quotes order language.
	v := c.Classify(&core.Email{
		SenderEmail: "help-desk@gmail.com",
		Subject:     "Shopify Support: action required",
		Body:        "There is a problem with my order on your store",
	})

	assert.Equal(t, core.VerdictImpersonation, v.Kind)
	assert.True(t, v.IsSpam)
	assert.Equal(t, "fake_brand:shopify", v.Reason())
}

func TestClassify_ScoreMonotonicity(t *testing.T) {
	c := newDefaultClassifier(t)

	base := &core.Email{
		SenderEmail: "contact@entreprise.fr",
		Body:        "i specialize in logistics",
	}
	more := &core.Email{
		SenderEmail: base.SenderEmail,
		Body:        base.Body + " and we can boost your sales quickly",
	}

	v1 := c.Classify(base)
	v2 := c.Classify(more)

	require.Equal(t, core.VerdictScored, v1.Kind)
	require.Equal(t, core.VerdictScored, v2.Kind)
	assert.GreaterOrEqual(t, v2.Score, v1.Score)
}

func TestClassify_ThresholdConsistencyAndBounds(t *testing.T) {
	c := newDefaultClassifier(t)

	emails := []*core.Email{
		{SenderEmail: "jean@entreprise.fr"},
		{SenderEmail: "contact@entreprise.fr", Body: "i specialize in logistics"},
		{SenderEmail: "horlarfydigital128@gmail.com", Subject: "Quick question about your store"},
		{SenderEmail: "adeola07@gmail.com", Subject: "Collaboration", Body: "We specialize in growth"},
	}

	for _, email := range emails {
		v := c.Classify(email)
		if v.Kind != core.VerdictScored {
			continue
		}
		assert.GreaterOrEqual(t, v.Score, 0.0)
		assert.LessOrEqual(t, v.Score, 1.0)
		assert.Equal(t, v.Score >= 0.35, v.IsSpam,
			"threshold decision must follow the score for %q", email.SenderEmail)
	}
}

func TestClassify_BoundsHostileInput(t *testing.T) {
	c := newDefaultClassifier(t)

	// A multi-megabyte body must be scanned over a bounded slice.
	huge := make([]byte, 4<<20)
	for i := range huge {
		huge[i] = 'a'
	}

	v := c.Classify(&core.Email{
		SenderEmail: "someone@entreprise.fr",
		Body:        string(huge),
	})

	assert.Equal(t, core.VerdictScored, v.Kind)
	assert.GreaterOrEqual(t, v.Score, 0.0)
	assert.LessOrEqual(t, v.Score, 1.0)
}
