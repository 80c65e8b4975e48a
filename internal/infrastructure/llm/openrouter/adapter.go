package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort

	requestTimeout time.Duration
	maxAttempts    int
	retryDelay     time.Duration
}

type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	Logger         output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:         apiKey,
		Model:          model,
		BaseURL:        "https://openrouter.ai/api/v1",
		RequestTimeout: 2 * time.Minute,
		MaxAttempts:    3,
		RetryDelay:     2 * time.Second,
	}
}

func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	return &Adapter{
		client:         openai.NewClientWithConfig(config),
		model:          cfg.Model,
		logger:         cfg.Logger,
		requestTimeout: cfg.RequestTimeout,
		maxAttempts:    maxAttempts,
		retryDelay:     cfg.RetryDelay,
	}
}

// Chat performs one completion turn. Transport-level failures are retried a
// bounded number of times with linear backoff; protocol-level problems such
// as an empty response fail fast. Every failure surfaces as *entity.ModelError.
func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)
	tools := convertTools(req.Tools)

	oaiReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: req.Temperature,
	}
	if len(tools) > 0 {
		oaiReq.ToolChoice = "auto"
	}

	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		resp, err := a.createCompletion(ctx, oaiReq)
		if err == nil {
			return a.convertResponse(resp)
		}

		lastErr = err
		if !retryable(err) || attempt == a.maxAttempts {
			break
		}

		delay := a.retryDelay * time.Duration(attempt)
		if a.logger != nil {
			a.logger.Warn("Retrying model call", "attempt", attempt, "delay", delay.String(), "error", err)
		}
		select {
		case <-ctx.Done():
			return nil, &entity.ModelError{Err: ctx.Err()}
		case <-time.After(delay):
		}
	}

	return nil, &entity.ModelError{Err: lastErr}
}

func (a *Adapter) createCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if a.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.requestTimeout)
		defer cancel()
	}
	return a.client.CreateChatCompletion(ctx, req)
}

func (a *Adapter) convertResponse(resp openai.ChatCompletionResponse) (*output.ChatResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, &entity.ModelError{Err: fmt.Errorf("no choices in response")}
	}

	msg := convertResponseMessage(resp.Choices[0].Message)
	if msg.Content == "" && len(msg.ToolCalls) == 0 {
		return nil, &entity.ModelError{Err: fmt.Errorf("response carries neither content nor tool calls")}
	}

	return &output.ChatResponse{Message: msg}, nil
}

// retryable treats rate limits and server-side errors as transient. Malformed
// requests and canceled contexts are not worth a second attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	// Anything else is a transport failure (connection reset, DNS, timeout).
	return true
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}

		if msg.ToolCallID != "" {
			oaiMsg.ToolCallID = msg.ToolCallID
		}
		if msg.Name != "" {
			oaiMsg.Name = msg.Name
		}

		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      string(tc.Name),
					Arguments: tc.Arguments,
				},
			})
		}

		result = append(result, oaiMsg)
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(t.Name),
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	result := entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}

	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      entity.ToolName(tc.Function.Name),
			Arguments: tc.Function.Arguments,
		})
	}

	return result
}
