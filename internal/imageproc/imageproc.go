// Package imageproc validates uploaded images and re-encodes them into a
// bounded JPEG.
package imageproc

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	MaxDimension = 1600
	JPEGQuality  = 85
	// OutputExt is the extension of every processed image.
	OutputExt = "jpg"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Sniff checks the filename extension and the leading bytes against the
// image whitelist and returns the detected MIME type.
func Sniff(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && !allowedExt[ext] {
		return "", errs.ErrUnsupportedType
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected := http.DetectContentType(head)
	if !allowedMime[detected] {
		return "", errs.ErrUnsupportedType
	}
	return detected, nil
}

// Process validates data and returns it re-encoded as JPEG, auto-oriented and
// fitted inside MaxDimension x MaxDimension. maxBytes bounds the input size.
func Process(filename string, data []byte, maxBytes int64) ([]byte, error) {
	if len(data) == 0 {
		return nil, errs.ErrImageRequired
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errs.ErrImageTooLarge
	}
	if _, err := Sniff(filename, data); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.Invalid("image could not be decoded")
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
