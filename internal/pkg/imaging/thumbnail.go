// Package imaging decodes uploaded images and produces JPEG thumbnails.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Thumbnail bounding box, in pixels.
const (
	ThumbnailMaxWidth  = 200
	ThumbnailMaxHeight = 200
)

// jpegQuality used when re-encoding thumbnails.
const jpegQuality = 80

// Thumbnail decodes an image (JPEG, PNG or GIF) and returns a JPEG thumbnail
// scaled down to fit the bounding box. Images already within the box are
// re-encoded without scaling.
func Thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > ThumbnailMaxWidth || height > ThumbnailMaxHeight {
		ratioW := float64(ThumbnailMaxWidth) / float64(width)
		ratioH := float64(ThumbnailMaxHeight) / float64(height)
		ratio := ratioW
		if ratioH < ratio {
			ratio = ratioH
		}

		dstW := int(float64(width) * ratio)
		dstH := int(float64(height) * ratio)
		if dstW < 1 {
			dstW = 1
		}
		if dstH < 1 {
			dstH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
