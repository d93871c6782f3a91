// Package upload stores uploaded profile pictures on the local filesystem.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize is the upload size limit in bytes.
const MaxFileSize = 1000000

// ErrInvalidFile indicates the upload is too large or not a jpg/jpeg/png image.
var ErrInvalidFile = errors.New("Only jpg, jpeg and png images with max size 1 MB is allowed.")

// allowedTypes maps the accepted file extensions to their sniffed MIME types.
var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Saver validates and persists uploaded images under a fixed directory.
type Saver struct {
	dir string
}

// NewSaver creates a Saver writing into dir. The directory is created on
// first save if it does not exist.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// Save checks the upload against the size and type limits, writes it under a
// fresh random name and returns the stored path. The extension must be
// jpg/jpeg/png and the file content must actually be such an image.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrInvalidFile
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	wantType, ok := allowedTypes[ext]
	if !ok {
		return "", ErrInvalidFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Sniff the content type from the first bytes; the extension alone is
	// not trusted.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if http.DetectContentType(head[:n]) != wantType {
		return "", ErrInvalidFile
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}
