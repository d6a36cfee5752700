package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header plus padding so content sniffing identifies it.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadMedia_Image(t *testing.T) {
	path := writeTempFile(t, "photo.png", pngBytes)

	media, err := loadMedia(path)
	require.NoError(t, err)
	assert.Equal(t, "photo.png", media.Filename)
	assert.Equal(t, "image/png", media.MIMEType)
	assert.Equal(t, "image", media.MediaType())
	assert.Equal(t, pngBytes, media.Data)
}

func TestLoadMedia_VideoByExtension(t *testing.T) {
	// Arbitrary bytes the sniffer cannot classify.
	path := writeTempFile(t, "clip.mp4", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})

	media, err := loadMedia(path)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", media.MIMEType)
	assert.Equal(t, "video", media.MediaType())
}

func TestLoadMedia_Empty(t *testing.T) {
	path := writeTempFile(t, "empty.png", nil)

	_, err := loadMedia(path)
	assert.Error(t, err)
}

func TestLoadMedia_Missing(t *testing.T) {
	_, err := loadMedia(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
