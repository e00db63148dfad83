package request

import (
	"errors"
	"strings"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
)

var ErrMissingFilenameType = errors.New("missing filename or type")

type ModerateRequest struct {
	Filename  string `json:"filename"`
	Type      string `json:"type"`
	Caption   string `json:"caption,omitempty"`
	ImageData string `json:"imageData,omitempty"`
	FileCount int    `json:"fileCount,omitempty"`
}

func (r *ModerateRequest) Validate() error {
	if strings.TrimSpace(r.Filename) == "" || strings.TrimSpace(r.Type) == "" {
		return ErrMissingFilenameType
	}
	return nil
}

func (r *ModerateRequest) ToDomain() domain.Request {
	return domain.Request{
		Filename:     r.Filename,
		DeclaredType: r.Type,
		Caption:      r.Caption,
		ImageData:    r.ImageData,
		FileCount:    r.FileCount,
	}
}
