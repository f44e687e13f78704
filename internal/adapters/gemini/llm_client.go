package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the ReviewClient interface using Google Gemini
type GeminiClient struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	modelName    string
	maxTokens    int
	temperature  float32
	topP         float32
	maxBodySize  int
	logger       *zap.Logger
	promptFormat string
}

// reviewResponse represents the structured response from the LLM
type reviewResponse struct {
	IsSpam     bool    `json:"is_spam"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:      client,
		model:       model,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		maxBodySize: maxBodySize,
		logger:      logger,
		promptFormat: `You review borderline emails for an e-commerce customer support inbox.
The rule engine could not decide whether this email is an unsolicited business
solicitation (marketing agency pitch, SEO/web design offer, growth or dropshipping
spam) or a legitimate customer inquiry about an order or a product.
Respond with a JSON object containing:
- is_spam: boolean (true if it is an unsolicited solicitation, false if it looks like a real customer)
- score: number between 0 and 1 (higher means more likely to be a solicitation)
- confidence: number between 0 and 1 (how confident you are in your assessment)
- reason: string (brief explanation of your decision)

Email:
From: %s
To: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// truncateBody truncates the email body if it exceeds the maximum size
func (c *GeminiClient) truncateBody(body string) string {
	if c.maxBodySize <= 0 || len(body) <= c.maxBodySize {
		return body
	}

	truncated := body[:c.maxBodySize]
	c.logger.Debug("Email body truncated",
		zap.Int("original_size", len(body)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", c.maxBodySize))

	return truncated + "\n[... Content truncated due to size limits ...]"
}

// ReviewEmail asks the model for a second opinion on a borderline email
func (c *GeminiClient) ReviewEmail(ctx context.Context, email *core.Email) (*core.SecondOpinion, error) {
	to := ""
	if len(email.To) > 0 {
		to = email.To[0]
		if len(email.To) > 1 {
			to += fmt.Sprintf(" and %d others", len(email.To)-1)
		}
	}

	truncatedBody := c.truncateBody(email.Body)

	prompt := fmt.Sprintf(c.promptFormat, email.SenderEmail, to, email.Subject, truncatedBody)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	analysis, err := parseReviewResponse(responseText)
	if err != nil {
		return nil, err
	}

	return &core.SecondOpinion{
		IsSpam:     analysis.IsSpam,
		Score:      analysis.Score,
		Confidence: analysis.Confidence,
		Reason:     analysis.Reason,
		ModelUsed:  c.modelName,
	}, nil
}

// parseReviewResponse parses the model output, tolerating prose around the
// JSON object
func parseReviewResponse(responseText string) (*reviewResponse, error) {
	var analysis reviewResponse
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		jsonStart := 0
		jsonEnd := len(responseText)

		for i := 0; i < len(responseText); i++ {
			if responseText[i] == '{' {
				jsonStart = i
				break
			}
		}

		for i := len(responseText) - 1; i >= 0; i-- {
			if responseText[i] == '}' {
				jsonEnd = i + 1
				break
			}
		}

		if jsonStart >= jsonEnd {
			return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		jsonStr := responseText[jsonStart:jsonEnd]
		if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}
	return &analysis, nil
}
