package moderation_test

import (
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt_NamesCriticalCategories(t *testing.T) {
	prompt := moderation.SystemPrompt()
	for _, id := range domain.CriticalViolations {
		assert.Contains(t, prompt, id)
	}
	assert.Contains(t, prompt, "confidence >50%")
	assert.Contains(t, prompt, "JSON ONLY")
}

func TestBuildPrompt(t *testing.T) {
	t.Run("image with caption", func(t *testing.T) {
		prompt := moderation.BuildPrompt(domain.Request{
			Filename:     "beach.jpg",
			DeclaredType: "image/jpeg",
			Caption:      "sunny day",
			ImageData:    "data:image/jpeg;base64,AAAA",
			FileCount:    3,
		})
		assert.Equal(t, moderation.SystemPrompt(), prompt.System)
		assert.Equal(t, "data:image/jpeg;base64,AAAA", prompt.ImageDataURI)
		assert.Contains(t, prompt.User, "Filename: beach.jpg")
		assert.Contains(t, prompt.User, "Type: image/jpeg")
		assert.Contains(t, prompt.User, "Caption: sunny day")
		assert.Contains(t, prompt.User, "upload of 3 files")
		assert.NotContains(t, prompt.User, "No image was provided")
	})

	t.Run("text only", func(t *testing.T) {
		prompt := moderation.BuildPrompt(domain.Request{Filename: "notes.txt", DeclaredType: "text/plain", FileCount: 1})
		assert.Empty(t, prompt.ImageDataURI)
		assert.Contains(t, prompt.User, "No image was provided")
		assert.NotContains(t, prompt.User, "Caption:")
		assert.NotContains(t, prompt.User, "Batch:")
	})
}
