// Package imaging turns camera frames and uploaded files into the data URLs
// stored on admission forms and staff profiles.
package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize caps file-picker uploads.
const MaxUploadSize = 5 << 20

var (
	ErrNotImage    = errors.New("file is not an image")
	ErrTooLarge    = errors.New("image exceeds the upload limit")
	ErrBadDataURL  = errors.New("malformed data URL")
	ErrEmptyUpload = errors.New("no image data")
)

// DataURL encodes data as a base64 data URL of the given MIME type.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its MIME type and payload.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrBadDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBadDataURL, err)
	}
	return mimeType, data, nil
}

// FromReader reads an uploaded file, checks by content that it is an image
// and returns it as a data URL.
func FromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return DataURL(mt.String(), data), nil
}

// IsImageSource reports whether s looks like something an <img> can show:
// an http(s) URL or an image data URL.
func IsImageSource(s string) bool {
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return true
	}
	mimeType, data, err := ParseDataURL(s)
	if err != nil || len(data) == 0 {
		return false
	}
	return strings.HasPrefix(mimeType, "image/") &&
		strings.HasPrefix(mimetype.Detect(data).String(), "image/")
}
