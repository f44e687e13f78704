package whitelist

import (
	"testing"

	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDefaultChecker(t *testing.T) *Checker {
	t.Helper()
	logger := zap.NewNop()
	store, err := rules.NewStore(logger, 256)
	require.NoError(t, err)
	return NewChecker(store, logger)
}

func TestIsWhitelisted_TrustedSenders(t *testing.T) {
	c := newDefaultChecker(t)

	tests := []struct {
		name   string
		sender string
		want   bool
	}{
		{name: "platform notification", sender: "notification@facebookmail.com", want: true},
		{name: "shopify official", sender: "no-reply@shopify.com", want: true},
		{name: "esp sender mixed case", sender: "Newsletter@Klaviyo.com", want: true},
		{name: "own domain", sender: "support@avenaparis.com", want: true},
		{name: "unknown sender", sender: "contact@evil.com", want: false},
		{name: "lookalike domain", sender: "billing@shopify.com.evil.net", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsWhitelisted(tt.sender, ""))
		})
	}
}

func TestIsWhitelisted_TransactionalSubjects(t *testing.T) {
	c := newDefaultChecker(t)

	tests := []struct {
		name    string
		subject string
		want    bool
	}{
		{name: "order confirmation", subject: "Confirmation de commande #1234", want: true},
		{name: "shipping notice", subject: "Your order ABC-42 has shipped", want: true},
		{name: "payment receipt", subject: "Reçu de paiement", want: true},
		{name: "order question from a customer", subject: "Où est ma commande #58391 ?", want: false},
		{name: "cold outreach", subject: "quick question about your store", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsWhitelisted("someone@example.com", tt.subject))
		})
	}
}

func TestMatch_EmptyInputs(t *testing.T) {
	store, err := rules.NewStore(zap.NewNop(), 256)
	require.NoError(t, err)

	assert.False(t, Match(store.Snapshot(), "", "", nil))
}
