package rawbt

import (
	"context"

	"momir/internal/momir"
)

// SchemePrefix is the custom URL scheme the RawBT app registers
const SchemePrefix = "rawbt:"

// SchemePrinter hands the image to RawBT by launching its URL scheme in the
// browser. There is no delivery confirmation.
type SchemePrinter struct{}

// Print returns the launch URL for the image
func (SchemePrinter) Print(ctx context.Context, img momir.CardImage, progress func(float64)) (momir.Handoff, error) {
	return momir.Handoff{LaunchURL: LaunchURL(img)}, nil
}

// LaunchURL embeds the image data URI in a rawbt: URL
func LaunchURL(img momir.CardImage) string {
	return SchemePrefix + img.DataURI
}
