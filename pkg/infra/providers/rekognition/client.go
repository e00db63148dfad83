package rekognition

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/awscfg"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const modelName = "aws-rekognition-moderation"

// DetectAPI is the slice of the Rekognition client used here.
type DetectAPI interface {
	DetectModerationLabels(
		ctx context.Context,
		params *rekognition.DetectModerationLabelsInput,
		optFns ...func(*rekognition.Options),
	) (*rekognition.DetectModerationLabelsOutput, error)
}

type ClientBuilder func(ctx context.Context, creds *providers.AwsCredentials) (DetectAPI, error)

// labelCategories maps Rekognition top level moderation labels to violation ids.
var labelCategories = map[string]string{
	"explicit nudity":       moderation.ViolationAdultContentNudity,
	"explicit":              moderation.ViolationAdultContentNudity,
	"non-explicit nudity":   moderation.ViolationAdultContentNudity,
	"suggestive":            moderation.ViolationAdultContentNudity,
	"swimwear or underwear": moderation.ViolationAdultContentNudity,
	"violence":              moderation.ViolationViolenceHarassment,
	"visually disturbing":   moderation.ViolationViolenceHarassment,
	"hate symbols":          moderation.ViolationViolenceHarassment,
	"rude gestures":         moderation.ViolationViolenceHarassment,
	"drugs":                 moderation.ViolationHarmfulDangerous,
	"drugs & tobacco":       moderation.ViolationHarmfulDangerous,
	"tobacco":               moderation.ViolationHarmfulDangerous,
	"alcohol":               moderation.ViolationHarmfulDangerous,
	"gambling":              moderation.ViolationHarmfulDangerous,
}

type judgmentIssue struct {
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Severity       string  `json:"severity"`
	Confidence     float64 `json:"confidence"`
	BlockingReason string  `json:"blocking_reason,omitempty"`
}

type judgmentBody struct {
	Status            string          `json:"status"`
	Confidence        float64         `json:"confidence"`
	ViolationCategory *string         `json:"violation_category"`
	Issues            []judgmentIssue `json:"issues"`
}

type client struct {
	clientPool *sync.Map
	build      ClientBuilder
}

func NewRekognitionClient() providers.Client {
	return NewRekognitionClientWithBuilder(func(ctx context.Context, creds *providers.AwsCredentials) (DetectAPI, error) {
		cfg, err := awscfg.Load(ctx, creds)
		if err != nil {
			return nil, err
		}
		return rekognition.NewFromConfig(cfg), nil
	})
}

func NewRekognitionClientWithBuilder(build ClientBuilder) providers.Client {
	return &client{clientPool: &sync.Map{}, build: build}
}

// Judge classifies the inline image with DetectModerationLabels and renders the
// labels in the moderation JSON shape, so the result goes through the same
// parser and policy as a language model answer. Text only requests cannot be
// judged by this backend and fail.
func (c *client) Judge(
	ctx context.Context,
	config *providers.Config,
	prompt providers.Prompt,
) (*providers.Judgment, error) {
	if prompt.ImageDataURI == "" {
		return nil, fmt.Errorf("rekognition requires image data")
	}
	img, err := providers.DecodeDataURI(prompt.ImageDataURI)
	if err != nil {
		return nil, err
	}

	api, err := c.getOrCreateClient(ctx, config.Credentials.Aws)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderRekognition, err)
	}
	output, err := api.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &rekognitiontypes.Image{Bytes: img.Data},
		MinConfidence: aws.Float32(moderation.ThresholdLowConfidence),
	})
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderRekognition, err)
	}

	text, err := render(output.ModerationLabels)
	if err != nil {
		return nil, err
	}
	model := modelName
	if version := aws.ToString(output.ModerationModelVersion); version != "" {
		model += ":" + version
	}
	return &providers.Judgment{
		ID:    providers.JudgmentID(ctx, providers.ProviderRekognition),
		Model: model,
		Text:  text,
	}, nil
}

func render(labels []rekognitiontypes.ModerationLabel) (string, error) {
	body := judgmentBody{Status: string(moderation.StatusPassed), Confidence: 100, Issues: []judgmentIssue{}}
	for _, label := range labels {
		name := aws.ToString(label.Name)
		parent := aws.ToString(label.ParentName)
		confidence := moderation.ClampConfidence(float64(aws.ToFloat32(label.Confidence)))

		category := categoryFor(name, parent)
		body.Issues = append(body.Issues, judgmentIssue{
			Category:    category,
			Description: describe(name, parent),
			Severity:    string(severityFor(confidence)),
			Confidence:  confidence,
		})
		if body.ViolationCategory == nil {
			body.ViolationCategory = moderation.StringPtr(category)
			body.Confidence = confidence
		}
	}
	if len(body.Issues) > 0 {
		body.Status = string(moderation.StatusFailed)
	}
	out, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to render rekognition labels: %w", err)
	}
	return string(out), nil
}

func categoryFor(name, parent string) string {
	for _, candidate := range []string{parent, name} {
		if id, ok := labelCategories[strings.ToLower(candidate)]; ok {
			return id
		}
	}
	return moderation.ViolationHarmfulDangerous
}

func describe(name, parent string) string {
	if parent == "" {
		return fmt.Sprintf("Detected %s", name)
	}
	return fmt.Sprintf("Detected %s (%s)", name, parent)
}

func severityFor(confidence float64) moderation.Severity {
	switch {
	case confidence >= moderation.ThresholdHighConfidence:
		return moderation.SeverityHigh
	case confidence >= moderation.ThresholdMediumConfidence:
		return moderation.SeverityMedium
	}
	return moderation.SeverityLow
}

func (c *client) getOrCreateClient(ctx context.Context, creds *providers.AwsCredentials) (DetectAPI, error) {
	key := awscfg.CacheKey(creds)
	if v, ok := c.clientPool.Load(key); ok {
		if api, ok := v.(DetectAPI); ok {
			return api, nil
		}
	}
	api, err := c.build(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create Rekognition client: %w", err)
	}
	c.clientPool.Store(key, api)
	return api, nil
}
