package rekognition_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/rekognition"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	rekognitiontypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDetect struct {
	mock.Mock
}

func (m *mockDetect) DetectModerationLabels(
	ctx context.Context,
	params *awsrekognition.DetectModerationLabelsInput,
	_ ...func(*awsrekognition.Options),
) (*awsrekognition.DetectModerationLabelsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsrekognition.DetectModerationLabelsOutput) //nolint:errcheck
	return out, args.Error(1)
}

func newClient(api rekognition.DetectAPI) providers.Client {
	return rekognition.NewRekognitionClientWithBuilder(
		func(context.Context, *providers.AwsCredentials) (rekognition.DetectAPI, error) { return api, nil },
	)
}

var imagePrompt = providers.Prompt{User: "u", ImageDataURI: "data:image/jpeg;base64,aGVsbG8="}

func TestJudge_RendersLabelsAsJudgment(t *testing.T) {
	api := new(mockDetect)
	api.On("DetectModerationLabels", mock.Anything, mock.MatchedBy(func(in *awsrekognition.DetectModerationLabelsInput) bool {
		return string(in.Image.Bytes) == "hello" && aws.ToFloat32(in.MinConfidence) == 50
	})).Return(&awsrekognition.DetectModerationLabelsOutput{
		ModerationLabels: []rekognitiontypes.ModerationLabel{
			{Name: aws.String("Graphic Violence"), ParentName: aws.String("Violence"), Confidence: aws.Float32(91)},
			{Name: aws.String("Smoking"), ParentName: aws.String("Tobacco"), Confidence: aws.Float32(55)},
		},
		ModerationModelVersion: aws.String("7.0"),
	}, nil).Once()

	judgment, err := newClient(api).Judge(context.Background(), &providers.Config{}, imagePrompt)
	require.NoError(t, err)
	assert.Equal(t, "aws-rekognition-moderation:7.0", judgment.Model)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(judgment.Text), &body))
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, moderation.ViolationViolenceHarassment, body["violation_category"])
	issues, ok := body["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 2)
	first, ok := issues[0].(map[string]any)
	require.True(t, ok)
	second, ok := issues[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "high", first["severity"])
	assert.Equal(t, "low", second["severity"])
	assert.Equal(t, moderation.ViolationHarmfulDangerous, second["category"])
}

func TestJudge_NoLabelsPasses(t *testing.T) {
	api := new(mockDetect)
	api.On("DetectModerationLabels", mock.Anything, mock.Anything).
		Return(&awsrekognition.DetectModerationLabelsOutput{}, nil).Once()

	judgment, err := newClient(api).Judge(context.Background(), &providers.Config{}, imagePrompt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"passed","confidence":100,"violation_category":null,"issues":[]}`, judgment.Text)
}

func TestJudge_RequiresImage(t *testing.T) {
	_, err := newClient(new(mockDetect)).Judge(context.Background(), &providers.Config{}, providers.Prompt{User: "u"})
	assert.ErrorContains(t, err, "requires image data")
}

func TestJudge_UpstreamFailure(t *testing.T) {
	api := new(mockDetect)
	api.On("DetectModerationLabels", mock.Anything, mock.Anything).Return(nil, errors.New("InvalidImageFormatException")).Once()

	_, err := newClient(api).Judge(context.Background(), &providers.Config{}, imagePrompt)
	assert.True(t, errors.Is(err, moderation.ErrUpstream))
}
