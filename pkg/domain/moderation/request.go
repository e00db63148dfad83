package moderation

import "strings"

// Request describes one piece of user content submitted for moderation.
// ImageData, when set, is a data URI (data:<mime>;base64,<payload>).
type Request struct {
	Filename     string
	DeclaredType string
	Caption      string
	ImageData    string
	FileCount    int
}

func (r Request) HasImage() bool {
	return strings.TrimSpace(r.ImageData) != ""
}

func (r Request) HasCaption() bool {
	return strings.TrimSpace(r.Caption) != ""
}
