package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"sals_backend/pkg/logger"
	"sals_backend/pkg/monitoring"
	"sals_backend/pkg/tracing"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "deepseek/deepseek-r1-0528-qwen3-8b:free"
	defaultTimeout = 60 * time.Second
)

// headerTransport adds the attribution headers OpenRouter expects.
type headerTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}

// OpenRouterProvider implements Completer on top of the go-openai client.
// Any OpenAI compatible endpoint works through BaseURL.
type OpenRouterProvider struct {
	client *openai.Client

	mu      sync.RWMutex
	model   string
	timeout time.Duration
}

func NewOpenRouterProvider(cfg Config) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}

	p := &OpenRouterProvider{client: openai.NewClientWithConfig(clientCfg)}
	p.Reconfigure(cfg.Model, cfg.Timeout)
	return p, nil
}

// Reconfigure swaps the model and per call timeout. Zero values fall back to
// the defaults.
func (p *OpenRouterProvider) Reconfigure(model string, timeout time.Duration) {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	p.mu.Lock()
	p.model = model
	p.timeout = timeout
	p.mu.Unlock()
}

func (p *OpenRouterProvider) ModelID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

func (p *OpenRouterProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.mu.RLock()
	model, timeout := p.model, p.timeout
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracing.Tracer.Start(ctx, "llm.complete")
	span.SetAttributes(attribute.String("llm.model", model))
	defer span.End()

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	elapsed := time.Since(start)

	if err != nil {
		err = mapOpenAIError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		monitoring.ObserveLLMRequest(model, "error", elapsed)
		logger.Log.Warn("LLM request failed",
			zap.String("model", model),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		monitoring.ObserveLLMRequest(model, "malformed", elapsed)
		return "", &MalformedResponse{Err: errors.New("no choices in response")}
	}

	monitoring.ObserveLLMRequest(model, "ok", elapsed)
	logger.Log.Debug("LLM request completed",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", elapsed))

	return resp.Choices[0].Message.Content, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
