package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

const MaxImageBytes = 4 << 20

var (
	ErrEmptyImage    = errors.New("image file is empty")
	ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	ErrNotAnImage    = errors.New("file is not an image")
	ErrNotDataURL    = errors.New("not a base64 data URL")
)

// EncodeImage turns file content into a data URL. The MIME type comes from
// the content, falling back to the file extension.
func EncodeImage(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyImage
	}
	if len(content) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	contentType := http.DetectContentType(content)
	if !strings.HasPrefix(contentType, "image/") {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, filename)
	}
	contentType, _, _ = strings.Cut(contentType, ";")
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(content)), nil
}

// DecodeImage is the inverse of EncodeImage.
func DecodeImage(dataURL string) (contentType string, content []byte, err error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrNotDataURL
	}
	contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	content, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return contentType, content, nil
}

func (d *RecipeDraft) AttachImage(filename string, content []byte) error {
	image, err := EncodeImage(filename, content)
	if err != nil {
		return err
	}
	d.Image = image
	return nil
}

func (d *RecipeDraft) ClearImage() {
	d.Image = ""
}
