package factory

import (
	"context"
	"fmt"

	"github.com/avenaparisshop/avena-sav-app/internal/adapters/bedrock"
	"github.com/avenaparisshop/avena-sav-app/internal/adapters/gemini"
	"github.com/avenaparisshop/avena-sav-app/internal/adapters/openai"
	"github.com/avenaparisshop/avena-sav-app/internal/config"
	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/avenaparisshop/avena-sav-app/internal/utils"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// ReviewFactory creates LLM review clients
type ReviewFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewReviewFactory creates a new review factory
func NewReviewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ReviewFactory {
	return &ReviewFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateReviewClient creates a review client based on the configured provider.
// Returns (nil, nil) when review is disabled; the service treats a nil
// reviewer as "never escalate".
func (f *ReviewFactory) CreateReviewClient() (core.ReviewClient, error) {
	reviewCfg := f.cfg.GetReview()
	if !reviewCfg.Enabled {
		return nil, nil
	}

	switch reviewCfg.Provider {
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		if openaiCfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		return openai.NewOpenAIClient(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			reviewCfg.MaxTokens,
			reviewCfg.Temperature,
			reviewCfg.TopP,
			reviewCfg.MaxBodySize,
			f.logger,
		), nil
	case "bedrock":
		bedrockCfg := f.cfg.GetBedrock()
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(bedrockCfg.Region),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		return bedrock.NewBedrockClient(
			client,
			bedrockCfg.ModelID,
			reviewCfg.MaxTokens,
			reviewCfg.Temperature,
			reviewCfg.TopP,
			reviewCfg.MaxBodySize,
			f.logger,
			f.textProcessor,
		), nil
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		if geminiCfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		return gemini.NewGeminiClient(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			reviewCfg.MaxTokens,
			reviewCfg.Temperature,
			reviewCfg.TopP,
			reviewCfg.MaxBodySize,
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported review provider: %s", reviewCfg.Provider)
	}
}
