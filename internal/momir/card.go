package momir

import (
	"strings"

	"github.com/google/uuid"
)

// CardImage is a fetched card picture addressed by a data URI (or a remote URL).
// It is immutable once fetched.
type CardImage struct {
	ID      string
	DataURI string
}

// NewCardImage wraps a data URI with a fresh ID
func NewCardImage(dataURI string) CardImage {
	return CardImage{
		ID:      uuid.NewString(),
		DataURI: dataURI,
	}
}

// IsZero reports whether the image is empty
func (c CardImage) IsZero() bool {
	return c.DataURI == ""
}

// Base64Payload returns the data URI payload without its "data:...;base64," prefix
func (c CardImage) Base64Payload() string {
	_, payload, found := strings.Cut(c.DataURI, ",")
	if !found {
		return c.DataURI
	}
	return payload
}
