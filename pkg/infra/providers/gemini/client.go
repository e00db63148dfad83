package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type client struct {
	clientPool *sync.Map
}

func NewGeminiClient() providers.Client {
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

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt.User)}
	if prompt.ImageDataURI != "" {
		img, err := providers.DecodeDataURI(prompt.ImageDataURI)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MediaType))
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if prompt.System != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}
	if config.Temperature > 0 {
		genConfig.Temperature = genai.Ptr[float32](float32(config.Temperature))
	}
	if config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(config.MaxTokens)
	}

	genaiClient, err := c.getOrCreateClient(ctx, config.Credentials.ApiKey, config.BaseURL)
	if err != nil {
		return nil, err
	}

	result, err := genaiClient.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		genConfig,
	)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderGemini, err)
	}

	responseText := providers.TrimCodeFence(result.Text())
	if responseText == "" {
		return nil, providers.UpstreamError(providers.ProviderGemini, fmt.Errorf("no completions returned"))
	}

	judgment := &providers.Judgment{
		ID:    providers.JudgmentID(ctx, providers.ProviderGemini),
		Model: model,
		Text:  responseText,
	}
	if result.UsageMetadata != nil {
		judgment.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return judgment, nil
}

func (c *client) getOrCreateClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	key := apiKey + "|" + baseURL
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*genai.Client); ok {
			return cli, nil
		}
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	actual, _ := c.clientPool.LoadOrStore(key, cli)
	if stored, ok := actual.(*genai.Client); ok {
		return stored, nil
	}
	return cli, nil
}
