package config

// Weights holds the per-channel scoring weights
type Weights struct {
	Sender         float64
	SubjectFirst   float64
	SubjectExtra   float64
	BodyFirst      float64
	BodyExtra      float64
	SuspiciousName float64
	Freemail       float64
}

// SpamConfig represents the scoring configuration
type SpamConfig struct {
	Threshold       float64
	Weights         Weights
	FreemailDomains []string
	MaxScanBytes    int
}

// RulesConfig represents the rule store configuration
type RulesConfig struct {
	MaxPatternLength int
	Persist          bool
	SQLitePath       string
}

// ReviewConfig represents the LLM second-opinion configuration
type ReviewConfig struct {
	Enabled     bool
	Provider    string
	BandLow     float64
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region  string
	ModelID string
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey    string
	ModelName string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey    string
	ModelName string
}

// GetSpam returns the scoring configuration
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		Threshold: c.GetFloat64("spam.threshold"),
		Weights: Weights{
			Sender:         c.GetFloat64("spam.weights.sender"),
			SubjectFirst:   c.GetFloat64("spam.weights.subject_first"),
			SubjectExtra:   c.GetFloat64("spam.weights.subject_extra"),
			BodyFirst:      c.GetFloat64("spam.weights.body_first"),
			BodyExtra:      c.GetFloat64("spam.weights.body_extra"),
			SuspiciousName: c.GetFloat64("spam.weights.suspicious_name"),
			Freemail:       c.GetFloat64("spam.weights.freemail"),
		},
		FreemailDomains: c.GetStringSlice("spam.freemail_domains"),
		MaxScanBytes:    c.GetInt("spam.max_scan_bytes"),
	}
}

// GetRules returns the rule store configuration
func (c *Config) GetRules() RulesConfig {
	return RulesConfig{
		MaxPatternLength: c.GetInt("rules.max_pattern_length"),
		Persist:          c.GetBool("rules.persist"),
		SQLitePath:       c.GetString("rules.sqlite_path"),
	}
}

// GetReview returns the LLM review configuration
func (c *Config) GetReview() ReviewConfig {
	return ReviewConfig{
		Enabled:     c.GetBool("review.enabled"),
		Provider:    c.GetString("review.provider"),
		BandLow:     c.GetFloat64("review.band_low"),
		MaxTokens:   c.GetInt("review.max_tokens"),
		Temperature: float32(c.GetFloat64("review.temperature")),
		TopP:        float32(c.GetFloat64("review.top_p")),
		MaxBodySize: c.GetInt("review.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:  c.GetString("bedrock.region"),
		ModelID: c.GetString("bedrock.model_id"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:    c.GetString("gemini.api_key"),
		ModelName: c.GetString("gemini.model_name"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:    c.GetString("openai.api_key"),
		ModelName: c.GetString("openai.model_name"),
	}
}
