// Package storage keeps uploaded images on the local filesystem under a media
// root. Paths handed back to callers are relative to that root and use
// forward slashes, so they double as the URL suffix under /media/.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const URLPrefix = "/media/"

var (
	ErrNotImage = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")
	ErrTooLarge = errors.New("uploaded file is too large")
)

type MediaStore struct {
	root     string
	maxBytes int64
}

func NewMediaStore(root string, maxBytes int64) *MediaStore {
	return &MediaStore{root: root, maxBytes: maxBytes}
}

func (s *MediaStore) Root() string {
	return s.root
}

// SaveImage stores r as uploads/<kind>/<uuid><ext>. The content must sniff as
// an image; the extension is taken from filename, or from the detected type
// when filename has none.
func (s *MediaStore) SaveImage(kind, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mtype.Extension()
	}

	rel := path.Join("uploads", kind, uuid.NewString()+ext)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := writeFile(dst, data); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *MediaStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// URL is the public URL of a stored file.
func URL(rel *string) *string {
	if rel == nil || *rel == "" {
		return nil
	}
	u := URLPrefix + *rel
	return &u
}

func writeFile(dst string, data []byte) error {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write media file: %w", err)
	}
	return f.Close()
}
