package filter

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodedHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain header untouched", value: "Où est ma commande", want: "Où est ma commande"},
		{name: "q-encoded utf8", value: "=?UTF-8?Q?O=C3=B9_est_ma_commande?=", want: "Où est ma commande"},
		{name: "b-encoded utf8", value: "=?UTF-8?B?UmXDp3UgZGUgcGFpZW1lbnQ=?=", want: "Reçu de paiement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeEncodedHeader(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSenderParts(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantName string
		wantAddr string
	}{
		{
			name:     "name and address",
			header:   `"Shopify Support" <contact.shopifymailer@gmail.com>`,
			wantName: "Shopify Support",
			wantAddr: "contact.shopifymailer@gmail.com",
		},
		{
			name:     "bare address",
			header:   "jean@entreprise.fr",
			wantName: "",
			wantAddr: "jean@entreprise.fr",
		},
		{
			name:     "unparseable falls back to raw",
			header:   "not an address at all",
			wantName: "",
			wantAddr: "not an address at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, addr := senderParts(tt.header)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantAddr, addr)
		})
	}
}

func TestExtractTextFromMessage_Plain(t *testing.T) {
	raw := "From: a@b.com\r\n" +
		"Subject: hello\r\n" +
		"\r\n" +
		"Bonjour, où est ma commande ?\r\n"

	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "où est ma commande")
}

func TestExtractTextFromMessage_MultipartKeepsOnlyTextPlain(t *testing.T) {
	raw := "From: a@b.com\r\n" +
		"Content-Type: multipart/alternative; boundary=\"sep\"\r\n" +
		"\r\n" +
		"--sep\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain part one\r\n" +
		"--sep\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>html part</p>\r\n" +
		"--sep\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"plain part two\r\n" +
		"--sep--\r\n"

	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "plain part one")
	assert.Contains(t, text, "plain part two")
	assert.NotContains(t, text, "html part")
}

func TestExtractTextFromMessage_MultipartWithoutTextPlain(t *testing.T) {
	raw := "From: a@b.com\r\n" +
		"Content-Type: multipart/mixed; boundary=\"sep\"\r\n" +
		"\r\n" +
		"--sep\r\n" +
		"Content-Type: application/pdf\r\n" +
		"\r\n" +
		"%PDF-1.4\r\n" +
		"--sep--\r\n"

	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "No text content found")
}
