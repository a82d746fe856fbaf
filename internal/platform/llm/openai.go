package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
)

// openAIClient talks to any OpenAI-compatible chat completions endpoint.
// DeepSeek is the default base URL.
type openAIClient struct {
	client openai.Client
	model  string
}

func newOpenAIClient(cfg Config) *openAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIClient{client: openai.NewClient(opts...), model: cfg.Model}
}

func (c *openAIClient) Provider() string { return "openai" }

func (c *openAIClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", &pkgerrors.GenerationError{Op: opts.Op, Status: status, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &pkgerrors.GenerationError{Op: opts.Op, Err: fmt.Errorf("empty choices")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &pkgerrors.GenerationError{Op: opts.Op, Err: fmt.Errorf("empty completion")}
	}
	return text, nil
}
