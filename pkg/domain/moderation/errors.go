package moderation

import "errors"

var (
	ErrMissingCredential = errors.New("moderation credential is not configured")
	ErrEmptyJudgment     = errors.New("judgment is empty")
	ErrSchemaViolation   = errors.New("judgment does not match the moderation schema")
	ErrUpstream          = errors.New("judgment upstream failed")
	ErrInvalidImageData  = errors.New("image data is not a valid base64 data URI")
)
