package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// UploadResizeWidth bounds the derivative kept for general uploads.
	UploadResizeWidth = 1280
	// ProfilePicWidth bounds profile pictures.
	ProfilePicWidth = 256
)

// SaveResized decodes the source bytes and writes a width-bounded derivative
// to dstPath. Images narrower than the bound are written as-is, never
// upscaled.
func SaveResized(data []byte, dstPath string, width int) error {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, dstPath); err != nil {
		return fmt.Errorf("save resized image: %w", err)
	}
	return nil
}
