package bedrock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/awscfg"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const defaultModel = "anthropic.claude-3-5-sonnet-20240620-v1:0"

//go:generate mockery --name=ConverseAPI --dir=. --output=./mocks --filename=converse_api_mock.go --case=underscore --with-expecter

// ConverseAPI is the slice of the Bedrock runtime client used here.
type ConverseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

type ClientBuilder func(ctx context.Context, creds *providers.AwsCredentials) (ConverseAPI, error)

type client struct {
	clientPool *sync.Map
	build      ClientBuilder
}

func NewBedrockClient() providers.Client {
	return NewBedrockClientWithBuilder(defaultBuilder)
}

func NewBedrockClientWithBuilder(build ClientBuilder) providers.Client {
	return &client{
		clientPool: &sync.Map{},
		build:      build,
	}
}

func defaultBuilder(ctx context.Context, creds *providers.AwsCredentials) (ConverseAPI, error) {
	cfg, err := awscfg.Load(ctx, creds)
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

func (c *client) Judge(
	ctx context.Context,
	config *providers.Config,
	prompt providers.Prompt,
) (*providers.Judgment, error) {
	if config.Credentials.Aws == nil {
		return nil, fmt.Errorf("aws credentials are required")
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}

	content := []types.ContentBlock{
		&types.ContentBlockMemberText{Value: prompt.User},
	}
	if prompt.ImageDataURI != "" {
		img, err := providers.DecodeDataURI(prompt.ImageDataURI)
		if err != nil {
			return nil, err
		}
		format, err := imageFormat(img.MediaType)
		if err != nil {
			return nil, err
		}
		content = append(content, &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: format,
				Source: &types.ImageSourceMemberBytes{Value: img.Data},
			},
		})
	}

	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(model),
		Messages: []types.Message{
			{Role: types.ConversationRoleUser, Content: content},
		},
		InferenceConfig: &types.InferenceConfiguration{},
	}
	if prompt.System != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: prompt.System},
		}
	}
	if config.MaxTokens > 0 {
		input.InferenceConfig.MaxTokens = aws.Int32(int32(config.MaxTokens))
	}
	if config.Temperature > 0 {
		input.InferenceConfig.Temperature = aws.Float32(float32(config.Temperature))
	}

	runtime, err := c.getOrCreateClient(ctx, config.Credentials.Aws)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderBedrock, err)
	}
	output, err := runtime.Converse(ctx, input)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderBedrock, err)
	}

	text := extractText(output)
	if text == "" {
		return nil, providers.UpstreamError(providers.ProviderBedrock, fmt.Errorf("no text content returned"))
	}

	judgment := &providers.Judgment{
		ID:    providers.JudgmentID(ctx, providers.ProviderBedrock),
		Model: model,
		Text:  providers.TrimCodeFence(text),
	}
	if output.Usage != nil {
		judgment.Usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(output.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(output.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(output.Usage.TotalTokens)),
		}
	}
	return judgment, nil
}

func extractText(output *bedrockruntime.ConverseOutput) string {
	msg, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return b.String()
}

func imageFormat(mediaType string) (types.ImageFormat, error) {
	switch strings.ToLower(mediaType) {
	case "image/png":
		return types.ImageFormatPng, nil
	case "image/jpeg", "image/jpg":
		return types.ImageFormatJpeg, nil
	case "image/gif":
		return types.ImageFormatGif, nil
	case "image/webp":
		return types.ImageFormatWebp, nil
	}
	return "", fmt.Errorf("unsupported image format for bedrock: %s", mediaType)
}

func (c *client) getOrCreateClient(ctx context.Context, creds *providers.AwsCredentials) (ConverseAPI, error) {
	key := awscfg.CacheKey(creds)
	if v, ok := c.clientPool.Load(key); ok {
		if runtime, ok := v.(ConverseAPI); ok {
			return runtime, nil
		}
	}
	runtime, err := c.build(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}
	c.clientPool.Store(key, runtime)
	return runtime, nil
}
