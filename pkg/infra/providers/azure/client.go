package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
)

const (
	defaultAPIVersion  = "2024-06-01"
	cognitiveScope     = "https://cognitiveservices.azure.com/.default"
	maxErrorBodyLength = 4096
)

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage providers.Usage `json:"usage"`
}

type Option func(*client)

// WithTokenCredential replaces the default Azure identity chain.
func WithTokenCredential(cred azcore.TokenCredential) Option {
	return func(c *client) {
		c.credential = cred
	}
}

type client struct {
	httpClient httpx.Client
	credential azcore.TokenCredential
	credOnce   sync.Once
	credErr    error
}

func NewAzureClient(httpClient httpx.Client, opts ...Option) providers.Client {
	c := &client{httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Judge calls an Azure OpenAI chat deployment. config.Model is the deployment name.
// Authentication uses the api-key header, or an Azure AD token when the
// credentials ask for managed identity.
func (c *client) Judge(
	ctx context.Context,
	config *providers.Config,
	prompt providers.Prompt,
) (*providers.Judgment, error) {
	azureCreds := config.Credentials.Azure
	if azureCreds == nil || azureCreds.Endpoint == "" {
		return nil, fmt.Errorf("azure endpoint is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model (deployment ID) is required")
	}
	if !azureCreds.UseIdentity && config.Credentials.ApiKey == "" {
		return nil, fmt.Errorf("API key is required when not using Azure identity")
	}

	body, err := buildRequest(config, prompt)
	if err != nil {
		return nil, err
	}

	apiVersion := azureCreds.ApiVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimSuffix(azureCreds.Endpoint, "/"), config.Model, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if azureCreds.UseIdentity {
		token, err := c.token(ctx)
		if err != nil {
			return nil, providers.UpstreamError(providers.ProviderAzure, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("api-key", config.Credentials.ApiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderAzure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.UpstreamError(providers.ProviderAzure, fmt.Errorf("failed to read response body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		if len(respBody) > maxErrorBodyLength {
			respBody = respBody[:maxErrorBodyLength]
		}
		return nil, providers.UpstreamError(providers.ProviderAzure, fmt.Errorf("non-200 status: %d: %s", resp.StatusCode, respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, providers.UpstreamError(providers.ProviderAzure, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return nil, providers.UpstreamError(providers.ProviderAzure, fmt.Errorf("no completions returned"))
	}

	id := parsed.ID
	if id == "" {
		id = providers.JudgmentID(ctx, providers.ProviderAzure)
	}
	model := parsed.Model
	if model == "" {
		model = config.Model
	}
	return &providers.Judgment{
		ID:    id,
		Model: model,
		Text:  providers.TrimCodeFence(parsed.Choices[0].Message.Content),
		Usage: parsed.Usage,
	}, nil
}

func buildRequest(config *providers.Config, prompt providers.Prompt) ([]byte, error) {
	var messages []message
	if prompt.System != "" {
		messages = append(messages, message{Role: "system", Content: prompt.System})
	}
	if prompt.ImageDataURI != "" {
		if _, err := providers.DecodeDataURI(prompt.ImageDataURI); err != nil {
			return nil, err
		}
		messages = append(messages, message{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt.User},
			{Type: "image_url", ImageURL: &imageURL{URL: prompt.ImageDataURI}},
		}})
	} else {
		messages = append(messages, message{Role: "user", Content: prompt.User})
	}

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return body, nil
}

func (c *client) token(ctx context.Context) (string, error) {
	c.credOnce.Do(func() {
		if c.credential != nil {
			return
		}
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			c.credErr = fmt.Errorf("failed to create credential: %w", err)
			return
		}
		c.credential = cred
	})
	if c.credErr != nil {
		return "", c.credErr
	}
	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{cognitiveScope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token.Token, nil
}
