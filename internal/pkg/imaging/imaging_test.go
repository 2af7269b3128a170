package imaging

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 160, B: 40, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeFrame_FixedSize(t *testing.T) {
	for _, size := range []image.Point{{1280, 720}, {300, 900}, {480, 600}} {
		url, err := EncodeFrame(solid(size.X, size.Y))
		require.NoError(t, err)

		mimeType, data, err := ParseDataURL(url)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimeType)

		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, FrameWidth, cfg.Width)
		assert.Equal(t, FrameHeight, cfg.Height)
	}
}

func TestEncodeFrame_Empty(t *testing.T) {
	_, err := EncodeFrame(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestPortraitCrop(t *testing.T) {
	assert.Equal(t, image.Rect(160, 0, 560, 500), portraitCrop(image.Rect(0, 0, 720, 500)))
	assert.Equal(t, image.Rect(0, 50, 400, 550), portraitCrop(image.Rect(0, 0, 400, 600)))
}

func TestFromReader(t *testing.T) {
	url, err := FromReader(bytes.NewReader(pngBytes(t, solid(10, 10))))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	assert.True(t, IsImageSource(url))

	_, err = FromReader(strings.NewReader("%PDF-1.4 not a picture"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = FromReader(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestParseDataURL_Malformed(t *testing.T) {
	for _, in := range []string{"", "https://x", "data:image/png,abc", "data:image/png;base64", "data:image/png;base64,@@"} {
		_, _, err := ParseDataURL(in)
		assert.ErrorIs(t, err, ErrBadDataURL, in)
	}
}

func TestIsImageSource(t *testing.T) {
	assert.True(t, IsImageSource("https://images.unsplash.com/photo.jpg"))
	assert.False(t, IsImageSource("javascript:alert(1)"))
	assert.False(t, IsImageSource(DataURL("image/png", []byte("hello"))))
}

func TestClientCamera(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, NewClientCamera(PermissionDenied).Open(ctx), ErrPermissionDenied)
	assert.ErrorIs(t, NewClientCamera("").Open(ctx), ErrNoDevice)

	cam := NewClientCamera(PermissionGranted)
	assert.ErrorIs(t, cam.PushFrame(bytes.NewReader(pngBytes(t, solid(4, 4)))), ErrCameraClosed)

	require.NoError(t, cam.Open(ctx))
	_, err := cam.Frame(ctx)
	assert.ErrorIs(t, err, ErrNoFrame)

	require.NoError(t, cam.PushFrame(bytes.NewReader(pngBytes(t, solid(8, 6)))))
	frame, err := cam.Frame(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, frame.Bounds().Dx())

	assert.ErrorIs(t, cam.PushFrame(strings.NewReader("garbage")), ErrNotImage)

	require.NoError(t, cam.Close())
	assert.False(t, cam.IsOpen())
	_, err = cam.Frame(ctx)
	assert.ErrorIs(t, err, ErrCameraClosed)
}

// oversizedPNG returns a small valid PNG whose IHDR declares w by h pixels.
func oversizedPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngBytes(t, solid(2, 2))

	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc
	const ihdr = 8 + 4
	binary.BigEndian.PutUint32(data[ihdr+4:], w)
	binary.BigEndian.PutUint32(data[ihdr+8:], h)
	length := binary.BigEndian.Uint32(data[8:12])
	crcAt := ihdr + 4 + int(length)
	binary.BigEndian.PutUint32(data[crcAt:], crc32.ChecksumIEEE(data[ihdr:crcAt]))
	return data
}

func TestClientCamera_RejectsOversizedFrame(t *testing.T) {
	ctx := context.Background()
	cam := NewClientCamera(PermissionGranted)
	require.NoError(t, cam.Open(ctx))

	huge := oversizedPNG(t, 12000, 12000)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(huge))
	require.NoError(t, err)
	require.Equal(t, 12000, cfg.Width)

	err = cam.PushFrame(bytes.NewReader(huge))
	assert.ErrorIs(t, err, ErrFrameTooLarge)
	assert.NotErrorIs(t, err, ErrNotImage)

	_, err = cam.Frame(ctx)
	assert.ErrorIs(t, err, ErrNoFrame)

	wide := oversizedPNG(t, MaxFrameDimension+1, 10)
	assert.ErrorIs(t, cam.PushFrame(bytes.NewReader(wide)), ErrFrameTooLarge)

	require.NoError(t, cam.PushFrame(bytes.NewReader(pngBytes(t, solid(MaxFrameDimension, 2)))))
}
