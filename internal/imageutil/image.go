// Package imageutil validates uploaded photos and shrinks them before they
// are sent to a vision model.
package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
)

// MaxWidth is the widest image forwarded upstream.
const MaxWidth = 1024

// AllowedTypes are the accepted upload MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrContentMismatch = errors.New("image content does not match an allowed type")
)

// CheckHeader validates the declared size and MIME type of an upload before
// its body is read.
func CheckHeader(size, limit int64, declaredType string) error {
	if size > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, limit)
	}
	if !allowed(declaredType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, declaredType)
	}
	return nil
}

// Sniff detects the actual type of data and returns it if allowed.
func Sniff(data []byte) (string, error) {
	detected := mimetype.Detect(data)
	for _, t := range AllowedTypes {
		if detected.Is(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: detected %s", ErrContentMismatch, detected.String())
}

func allowed(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "image/jpg" {
		mimeType = "image/jpeg"
	}
	for _, t := range AllowedTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}

// Downscale re-encodes JPEG and PNG images wider than MaxWidth. Other types,
// narrow images and undecodable data are returned unchanged.
func Downscale(data []byte, mimeType string) []byte {
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return data
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= MaxWidth {
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	img = resize.Resize(MaxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch mimeType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return data
	}
	return buf.Bytes()
}
