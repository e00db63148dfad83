package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJudge_MissingAPIKey(t *testing.T) {
	client := gemini.NewGeminiClient()
	_, err := client.Judge(context.Background(), &providers.Config{}, providers.Prompt{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestJudge_StripsCodeFence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "candidates": [{
		    "content": {"role": "model", "parts": [{"text": "` + "```json\\n{\\\"status\\\":\\\"passed\\\",\\\"issues\\\":[]}\\n```" + `"}]},
		    "finishReason": "STOP"
		  }],
		  "usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
		}`))
	}))
	defer srv.Close()

	client := gemini.NewGeminiClient()
	judgment, err := client.Judge(context.Background(), &providers.Config{
		Credentials: providers.Credentials{ApiKey: "k"},
		BaseURL:     srv.URL,
		Model:       "gemini-2.0-flash",
	}, providers.Prompt{System: "s", User: "u"})
	require.NoError(t, err)

	assert.Equal(t, `{"status":"passed","issues":[]}`, judgment.Text)
	assert.Equal(t, 7, judgment.Usage.TotalTokens)
	assert.Equal(t, "gemini-2.0-flash", judgment.Model)
}
