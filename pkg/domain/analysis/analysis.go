package analysis

import "errors"

type Kind string

const (
	KindComment Kind = "comment"
	KindStory   Kind = "story"
)

func (k Kind) Valid() bool {
	return k == KindComment || k == KindStory
}

type Request struct {
	Kind    Kind
	Content string
	Context string
}

// Result carries the model's free-form analysis text.
type Result struct {
	Kind     Kind
	Analysis string
	Model    string
}

var (
	ErrUnsupportedKind   = errors.New("type must be 'comment' or 'story'")
	ErrEmptyContent      = errors.New("content is required")
	ErrMissingCredential = errors.New("analysis provider API key not configured")
)
