package anthropic

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-3-5-sonnet-latest"
	defaultMaxTokens = 800
)

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
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

	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt.User)}
	if prompt.ImageDataURI != "" {
		img, err := providers.DecodeDataURI(prompt.ImageDataURI)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(img.MediaType, img.Base64))
	}

	model := anthropic.Model(defaultModel)
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}
	maxTokens := int64(defaultMaxTokens)
	if config.MaxTokens > 0 {
		maxTokens = int64(config.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		MaxTokens: maxTokens,
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Text: prompt.System,
				Type: "text",
			},
		}
	}
	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	anthropicClient := c.getOrCreateClient(config.Credentials.ApiKey, config.BaseURL)
	message, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderAnthropic, err)
	}

	var responseText string
	for _, content := range message.Content {
		if content.Type == "text" {
			responseText = content.Text
			break
		}
	}
	if responseText == "" {
		return nil, providers.UpstreamError(providers.ProviderAnthropic, fmt.Errorf("no text content returned"))
	}

	return &providers.Judgment{
		ID:    message.ID,
		Model: string(model),
		Text:  providers.TrimCodeFence(responseText),
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey, baseURL string) *anthropic.Client {
	key := apiKey + "|" + baseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*anthropic.Client); ok {
			return cli
		}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := anthropic.NewClient(opts...)
	actual, _ := c.clientPool.LoadOrStore(key, &cli)
	if stored, ok := actual.(*anthropic.Client); ok {
		return stored
	}
	return &cli
}
