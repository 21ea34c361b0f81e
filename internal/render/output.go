package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/imgio"
)

// MapResult contains an encoded strike map.
type MapResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Scale       int    `json:"scale"`
}

// Encode returns img as a base64 PNG.
func Encode(img image.Image, scale int) (*MapResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode strike map: %w", err)
	}

	return &MapResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Scale:       scale,
	}, nil
}

// Save writes img to path as PNG.
func Save(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save strike map: %w", err)
	}
	return nil
}
