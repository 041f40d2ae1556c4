package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	root := t.TempDir()
	s := NewMediaStore(root, 1<<20)

	rel, err := s.SaveImage("artist", "portrait.PNG", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "uploads/artist/"))
	assert.Equal(t, ".png", filepath.Ext(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.NoError(t, err)

	require.NoError(t, s.Remove(rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(rel), "removing twice is fine")
}

func TestSaveImageUsesDetectedExtension(t *testing.T) {
	s := NewMediaStore(t.TempDir(), 1<<20)

	rel, err := s.SaveImage("art", "blob", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	s := NewMediaStore(t.TempDir(), 1<<20)

	_, err := s.SaveImage("art", "notes.png", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestSaveImageRejectsLargeFiles(t *testing.T) {
	data := pngBytes(t)
	s := NewMediaStore(t.TempDir(), int64(len(data)-1))

	_, err := s.SaveImage("art", "big.png", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestURL(t *testing.T) {
	assert.Nil(t, URL(nil))
	empty := ""
	assert.Nil(t, URL(&empty))

	rel := "uploads/art/x.png"
	assert.Equal(t, "/media/uploads/art/x.png", *URL(&rel))
}
