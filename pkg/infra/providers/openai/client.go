package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/singleflight"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewOpenaiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Judge(
	ctx context.Context,
	config *providers.Config,
	prompt providers.Prompt,
) (*providers.Judgment, error) {
	if config.Credentials.ApiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	userMessage, err := buildUserMessage(prompt)
	if err != nil {
		return nil, err
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, userMessage)

	params := openai.ChatCompletionNewParams{
		Model:    config.Model,
		Messages: messages,
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if config.Temperature > 0 {
		params.Temperature = openai.Float(config.Temperature)
	}

	openaiClient := c.getOrCreateClient(config.Credentials.ApiKey, config.BaseURL)
	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return nil, providers.UpstreamError(providers.ProviderOpenAI, fmt.Errorf("no completions returned"))
	}

	return &providers.Judgment{
		ID:    resp.ID,
		Model: resp.Model,
		Text:  providers.TrimCodeFence(resp.Choices[0].Message.Content),
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildUserMessage attaches the image as a content part when one is present.
func buildUserMessage(prompt providers.Prompt) (openai.ChatCompletionMessageParamUnion, error) {
	if prompt.ImageDataURI == "" {
		return openai.UserMessage(prompt.User), nil
	}
	if _, err := providers.DecodeDataURI(prompt.ImageDataURI); err != nil {
		return openai.ChatCompletionMessageParamUnion{}, err
	}
	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(prompt.User),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: prompt.ImageDataURI,
		}),
	}), nil
}

func (c *client) getOrCreateClient(apiKey, baseURL string) *openai.Client {
	key := apiKey + "|" + baseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*openai.Client); ok {
			return cli
		}
	}
	v, _, _ := c.sf.Do(key, func() (any, error) {
		if v2, ok := c.clientPool.Load(key); ok {
			return v2, nil
		}
		cli := newClient(apiKey, baseURL)
		c.clientPool.Store(key, cli)
		return cli, nil
	})
	if cli, ok := v.(*openai.Client); ok {
		return cli
	}
	return newClient(apiKey, baseURL)
}

func newClient(apiKey, baseURL string) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	return &cli
}
