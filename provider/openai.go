package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/aisystant/coursesync"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

// OpenAIProvider implements AIProvider using OpenAI chat completions.
// Each Translate call is exactly one non-streaming request.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o")
	Temperature float32 // Sampling temperature (0 leaves the API default)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: cfg.Temperature,
	}
}

// Translate sends one system instruction and one user message and returns
// the raw completion text.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: coursesync.BuildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: coursesync.BuildUserMessage(req)},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		status, retryable := apiFailure(err)
		return "", &coursesync.ProviderError{
			Message:    "chat completion",
			StatusCode: status,
			Cause:      err,
			Retryable:  retryable,
		}
	}

	if len(resp.Choices) == 0 {
		return "", &coursesync.ProviderError{
			Message:   "completion returned no choices",
			Retryable: true,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured chat model.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// apiFailure classifies a client error. Backend responses are judged by
// status code, transport failures by message.
func apiFailure(err error) (status int, retryable bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, coursesync.RetryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, coursesync.RetryableStatus(reqErr.HTTPStatusCode)
	}

	msg := strings.ToLower(err.Error())
	for _, transient := range []string{"timeout", "connection refused", "connection reset", "eof"} {
		if strings.Contains(msg, transient) {
			return 0, true
		}
	}
	return 0, false
}

// Verify OpenAIProvider implements AIProvider
var _ AIProvider = (*OpenAIProvider)(nil)
