package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassifierService wraps the rule pipeline with the optional LLM second
// opinion and its per-sender cache. The rule pipeline alone decides terminal
// verdicts; the reviewer is only consulted for scored verdicts that land in
// the uncertain band just below the threshold, and any reviewer failure
// leaves the rule verdict untouched.
type ClassifierService struct {
	classifier    Classifier
	reviewer      ReviewClient
	cache         VerdictCache
	logger        *zap.Logger
	cacheEnabled  bool
	cacheTTL      time.Duration
	threshold     float64
	reviewEnabled bool
	reviewBandLow float64
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	classifier Classifier,
	reviewer ReviewClient,
	cache VerdictCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	threshold float64,
	reviewEnabled bool,
	reviewBandLow float64,
) *ClassifierService {
	return &ClassifierService{
		classifier:    classifier,
		reviewer:      reviewer,
		cache:         cache,
		logger:        logger,
		cacheEnabled:  cacheEnabled,
		cacheTTL:      cacheTTL,
		threshold:     threshold,
		reviewEnabled: reviewEnabled,
		reviewBandLow: reviewBandLow,
	}
}

// AnalyzeEmail classifies an email and returns the verdict triple
func (s *ClassifierService) AnalyzeEmail(ctx context.Context, email *Email) (*ClassificationResult, error) {
	verdict := s.classifier.Classify(email)

	result := &ClassificationResult{
		IsSpam:       verdict.IsSpam,
		Score:        verdict.Score,
		Reason:       verdict.Reason(),
		Kind:         verdict.Kind,
		AnalyzedAt:   time.Now(),
		Engine:       "rules",
		ProcessingID: uuid.NewString(),
	}

	if s.shouldReview(verdict) {
		s.applySecondOpinion(ctx, email, result)
	}

	if result.IsSpam {
		s.logger.Info("Spam detected",
			zap.String("sender", email.SenderEmail),
			zap.Float64("score", result.Score),
			zap.String("reason", result.Reason),
			zap.String("engine", result.Engine))
	}

	return result, nil
}

// shouldReview reports whether the verdict lands in the uncertain band where
// a second opinion is worth the LLM round trip
func (s *ClassifierService) shouldReview(v Verdict) bool {
	if !s.reviewEnabled || s.reviewer == nil {
		return false
	}
	if v.Kind != VerdictScored {
		return false
	}
	return v.Score >= s.reviewBandLow && v.Score < s.threshold
}

// applySecondOpinion consults the cache, then the reviewer, and folds a spam
// opinion into the result. Reviewer errors fail open: the message keeps its
// rule verdict and falls through to human review downstream.
func (s *ClassifierService) applySecondOpinion(ctx context.Context, email *Email, result *ClassificationResult) {
	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, email.SenderEmail); err == nil {
			s.logger.Debug("Review cache hit", zap.String("sender", email.SenderEmail))
			if entry.IsSpam {
				result.IsSpam = true
				result.Score = maxFloat(result.Score, float64(entry.Score))
				result.Reason = result.Reason + "; llm:" + entry.Reason
			}
			result.Engine = "rules+cache"
			return
		}
	}

	opinion, err := s.reviewer.ReviewEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Second opinion unavailable, keeping rule verdict",
			zap.Error(err),
			zap.String("sender", email.SenderEmail))
		return
	}

	if opinion.IsSpam {
		result.IsSpam = true
		result.Score = maxFloat(result.Score, opinion.Score)
		result.Reason = result.Reason + "; llm:" + opinion.Reason
	}
	result.Engine = "rules+llm"

	if s.cacheEnabled && s.cache != nil {
		entry := &ReviewEntry{
			SenderEmail: email.SenderEmail,
			IsSpam:      opinion.IsSpam,
			Score:       float32(opinion.Score),
			Reason:      opinion.Reason,
			LastSeen:    time.Now(),
			ExpiresAt:   time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update review cache", zap.Error(err))
		}
	}
}

// AnnotateMessage stamps the verdict onto an ingestion-side record and
// assigns the routing category consumed by the dashboard
func (s *ClassifierService) AnnotateMessage(ctx context.Context, msg *InboundMessage) error {
	result, err := s.AnalyzeEmail(ctx, &Email{
		SenderEmail: msg.SenderEmail,
		SenderName:  msg.SenderName,
		Subject:     msg.Subject,
		Body:        msg.Body,
	})
	if err != nil {
		return err
	}

	msg.IsSpam = result.IsSpam
	msg.SpamScore = result.Score
	msg.SpamReason = result.Reason
	switch {
	case result.IsSpam:
		msg.Category = CategorySpam
	case result.Kind == VerdictRealCustomer:
		msg.Category = CategoryCustomer
	default:
		msg.Category = CategoryReview
	}
	return nil
}

// IsSpam determines if a result crosses the configured threshold
func (s *ClassifierService) IsSpam(result *ClassificationResult) bool {
	return result.IsSpam || result.Score >= s.threshold
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
