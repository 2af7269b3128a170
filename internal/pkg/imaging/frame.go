package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// Portrait dimensions of a captured passport photo.
const (
	FrameWidth  = 480
	FrameHeight = 600
	jpegQuality = 85
)

// EncodeFrame crops src to the portrait aspect ratio around its center,
// scales it to FrameWidth x FrameHeight and returns a JPEG data URL.
func EncodeFrame(src image.Image) (string, error) {
	if src == nil || src.Bounds().Empty() {
		return "", ErrEmptyUpload
	}

	crop := portraitCrop(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	return DataURL("image/jpeg", buf.Bytes()), nil
}

func portraitCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	// w/h > FrameWidth/FrameHeight means the frame is too wide
	if w*FrameHeight > h*FrameWidth {
		cw := h * FrameWidth / FrameHeight
		x0 := b.Min.X + (w-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := w * FrameHeight / FrameWidth
	y0 := b.Min.Y + (h-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}
