package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
)

// InlineImage is a decoded data URI.
type InlineImage struct {
	MediaType string
	Base64    string
	Data      []byte
}

// DecodeDataURI parses data:<mime>;base64,<payload>.
func DecodeDataURI(uri string) (*InlineImage, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return nil, moderation.ErrInvalidImageData
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || payload == "" {
		return nil, moderation.ErrInvalidImageData
	}
	mediaType, enc, _ := strings.Cut(header, ";")
	if enc != "base64" {
		return nil, moderation.ErrInvalidImageData
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", moderation.ErrInvalidImageData, err)
	}
	return &InlineImage{
		MediaType: mediaType,
		Base64:    payload,
		Data:      data,
	}, nil
}

// TrimCodeFence removes a surrounding markdown code fence from model output.
func TrimCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], "{[") {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// JudgmentID prefers the request id carried by ctx.
func JudgmentID(ctx context.Context, provider string) string {
	if requestID, ok := ctx.Value(common.RequestIDContextKey).(string); ok && requestID != "" {
		return fmt.Sprintf("%s-%s", provider, requestID)
	}
	return fmt.Sprintf("%s-%d", provider, time.Now().UnixNano())
}

func UpstreamError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", moderation.ErrUpstream, provider, err)
}
