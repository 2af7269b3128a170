package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sync"
)

var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNoDevice         = errors.New("no camera device available")
	ErrCameraClosed     = errors.New("camera is not open")
	ErrNoFrame          = errors.New("camera has not produced a frame yet")
	ErrFrameTooLarge    = errors.New("frame dimensions exceed the camera limit")
)

// MaxFrameDimension bounds the width and height a pushed frame may declare.
const MaxFrameDimension = 4096

// Camera is a live video source that can be frozen into a still.
type Camera interface {
	Open(ctx context.Context) error
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Permission values reported by a browser view for its camera.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// ClientCamera is the server side of a camera running in a browser view. The
// view reports its permission state when the camera starts and then pushes
// preview frames; the latest frame is the one captured.
type ClientCamera struct {
	mu         sync.Mutex
	permission string
	open       bool
	last       image.Image
}

func NewClientCamera(permission string) *ClientCamera {
	return &ClientCamera{permission: permission}
}

func (c *ClientCamera) Open(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.permission {
	case PermissionGranted:
		c.open = true
		return nil
	case PermissionDenied:
		return ErrPermissionDenied
	default:
		return ErrNoDevice
	}
}

// PushFrame decodes a JPEG or PNG preview frame and keeps it as the latest.
// The header is checked against MaxFrameDimension before any pixels are
// allocated.
func (c *ClientCamera) PushFrame(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	if cfg.Width > MaxFrameDimension || cfg.Height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d", ErrFrameTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotImage, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return ErrCameraClosed
	}
	c.last = img
	return nil
}

func (c *ClientCamera) Frame(_ context.Context) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraClosed
	}
	if c.last == nil {
		return nil, ErrNoFrame
	}
	return c.last, nil
}

func (c *ClientCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.last = nil
	return nil
}

// IsOpen reports whether the camera is currently streaming.
func (c *ClientCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
