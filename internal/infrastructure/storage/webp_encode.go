//go:build cgo && !nowebp

package storage

import (
	"fmt"
	"image"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// WebPEncoding reports whether this build can write webp output.
const WebPEncoding = true

func encodeWebP(w io.Writer, img image.Image, quality int) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return fmt.Errorf("building webp options: %w", err)
	}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("encoding webp: %w", err)
	}
	return nil
}
