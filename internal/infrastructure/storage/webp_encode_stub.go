//go:build !cgo || nowebp

package storage

import (
	"errors"
	"image"
	"io"
)

const WebPEncoding = false

var errWebPUnavailable = errors.New("webp encoding needs a cgo build with libwebp")

func encodeWebP(io.Writer, image.Image, int) error {
	return errWebPUnavailable
}
