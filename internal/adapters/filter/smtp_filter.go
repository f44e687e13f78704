package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// SMTPFilter sits between the MTA and the mailbox as a content filter. Every
// message is classified and stamped with verdict headers, then relayed back
// to the MTA on the re-injection port.
type SMTPFilter struct {
	service       *core.ClassifierService
	logger        *zap.Logger
	listenAddr    string
	server        *smtp.Server
	blockSpam     bool
	spamHeader    string
	scoreHeader   string
	reasonHeader  string
	relayAddr     string
	relayPort     int
	relayEnabled  bool
	subjectPrefix string
	modifySubject bool
}

// NewSMTPFilter creates a new SMTP content filter
func NewSMTPFilter(
	service *core.ClassifierService,
	logger *zap.Logger,
	listenAddr string,
	blockSpam bool,
	spamHeader string,
	scoreHeader string,
	reasonHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
	subjectPrefix string,
	modifySubject bool,
) *SMTPFilter {
	if subjectPrefix == "" && modifySubject {
		subjectPrefix = "[**SPAM**] "
	}

	return &SMTPFilter{
		service:       service,
		logger:        logger,
		listenAddr:    listenAddr,
		blockSpam:     blockSpam,
		spamHeader:    spamHeader,
		scoreHeader:   scoreHeader,
		reasonHeader:  reasonHeader,
		relayAddr:     relayAddr,
		relayPort:     relayPort,
		relayEnabled:  relayEnabled,
		subjectPrefix: subjectPrefix,
		modifySubject: modifySubject,
	}
}

// Start starts the SMTP filter service
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP filter service
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail classifies an email directly, bypassing the SMTP transport.
// This is mainly used for testing or direct API calls
func (f *SMTPFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.ClassificationResult, error) {
	return f.service.AnalyzeEmail(ctx, email)
}

// relay sends the processed email back to the MTA on the re-injection port
func (f *SMTPFilter) relay(sender string, recipients []string, emailData []byte) error {
	relayAddr := fmt.Sprintf("%s:%d", f.relayAddr, f.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			// Continue with other recipients even if one fails
		} else {
			recipientOK = true
		}
	}

	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	_, err = wc.Write(emailData)
	if err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
		// The email has already been sent at this point
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for our filter)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data classifies the message and relays it with verdict headers
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	// Keep a copy of the raw data for later reconstruction
	rawDataCopy := make([]byte, len(rawData))
	copy(rawDataCopy, rawData)

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.filter.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	// The display name and address come from the From header when present;
	// the envelope sender is the fallback
	senderName, senderEmail := senderParts(msg.Header.Get("From"))
	if senderEmail == "" {
		senderEmail = s.sender
	}

	subject, err := decodeEncodedHeader(msg.Header.Get("Subject"))
	if err != nil {
		subject = msg.Header.Get("Subject")
	}

	email := &core.Email{
		SenderEmail: senderEmail,
		SenderName:  senderName,
		To:          s.recipients,
		Subject:     subject,
		Body:        textContent,
		Headers:     make(map[string][]string),
	}
	for key, values := range msg.Header {
		email.Headers[key] = values
	}

	senderDomain := "unknown"
	if parts := strings.Split(senderEmail, "@"); len(parts) == 2 {
		senderDomain = parts[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Classify the email, but handle errors gracefully
	result, analysisErr := s.filter.service.AnalyzeEmail(ctx, email)
	if analysisErr != nil {
		s.filter.logger.Error("Failed to classify email",
			zap.Error(analysisErr),
			zap.String("sender", senderEmail),
			zap.String("sender_domain", senderDomain))

		// Fall open: deliver the message unjudged rather than bounce it
		result = &core.ClassificationResult{
			IsSpam:     false,
			Score:      0.0,
			Reason:     fmt.Sprintf("error during analysis: %v", analysisErr),
			Engine:     "error",
			AnalyzedAt: time.Now(),
		}
	}

	isSpam := result.IsSpam

	if isSpam && s.filter.blockSpam && analysisErr == nil {
		// Only reject if it's spam AND there was no error in analysis
		s.filter.logger.Info("Rejecting spam email",
			zap.String("from", senderEmail),
			zap.String("sender_domain", senderDomain),
			zap.Float64("score", result.Score),
			zap.String("reason", result.Reason))
		return fmt.Errorf("550 Rejected as spam (score: %.2f)", result.Score)
	}

	var modifiedEmail bytes.Buffer

	// Verdict headers go first
	fmt.Fprintf(&modifiedEmail, "%s: %t\r\n", s.filter.spamHeader, isSpam)
	fmt.Fprintf(&modifiedEmail, "%s: %.4f\r\n", s.filter.scoreHeader, result.Score)
	fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.reasonHeader, result.Reason)

	if analysisErr != nil {
		fmt.Fprintf(&modifiedEmail, "X-SAV-Analysis-Error: %s\r\n", analysisErr.Error())
	}

	if isSpam && s.filter.modifySubject && s.filter.subjectPrefix != "" {
		originalSubject := msg.Header.Get("Subject")
		decodedSubject, err := decodeEncodedHeader(originalSubject)
		if err != nil {
			decodedSubject = originalSubject
		}

		if !strings.HasPrefix(decodedSubject, s.filter.subjectPrefix) {
			fmt.Fprintf(&modifiedEmail, "Subject: %s\r\n", s.filter.subjectPrefix+decodedSubject)
			for key, values := range msg.Header {
				if !strings.EqualFold(key, "Subject") {
					for _, value := range values {
						fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
					}
				}
			}
		} else {
			// Subject already has the prefix, write all headers as is
			for key, values := range msg.Header {
				for _, value := range values {
					fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
				}
			}
		}
	} else {
		for key, values := range msg.Header {
			for _, value := range values {
				fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
			}
		}
	}

	fmt.Fprintf(&modifiedEmail, "\r\n")

	// Preserve the original body bytes (all MIME parts and attachments)
	bodyStartIndex := bytes.Index(rawDataCopy, []byte("\r\n\r\n"))
	if bodyStartIndex == -1 {
		bodyStartIndex = bytes.Index(rawDataCopy, []byte("\n\n"))
		if bodyStartIndex == -1 {
			bodyBytes, err := io.ReadAll(msg.Body)
			if err != nil {
				s.filter.logger.Error("Failed to read message body", zap.Error(err))
				return err
			}
			modifiedEmail.Write(bodyBytes)
		} else {
			modifiedEmail.Write(rawDataCopy[bodyStartIndex+2:])
		}
	} else {
		modifiedEmail.Write(rawDataCopy[bodyStartIndex+4:])
	}

	if s.filter.relayEnabled {
		if err := s.filter.relay(s.sender, s.recipients, modifiedEmail.Bytes()); err != nil {
			s.filter.logger.Error("Failed to relay email",
				zap.Error(err),
				zap.String("sender", senderEmail))
			return err
		}
	} else {
		s.filter.logger.Warn("Relay disabled, message was classified but not forwarded")
	}

	s.filter.logger.Info("Processed email",
		zap.String("from", senderEmail),
		zap.String("sender_domain", senderDomain),
		zap.Bool("is_spam", isSpam),
		zap.Float64("score", result.Score),
		zap.String("reason", result.Reason),
		zap.String("engine", result.Engine))

	return nil
}

// Logout handles SMTP logout (not needed for our filter)
func (s *smtpSession) Logout() error {
	return nil
}
