package media

import (
	"bytes"
	"encoding/base64"
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

type dirConfig string

func (d dirConfig) DataDirectory() string { return string(d) }

func pngDataURI(t *testing.T) string {
	t.Helper()
	return sizedPNG(t, 2, 2)
}

func sizedPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSave(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, err := New(dirConfig(dir))
	require.NoError(t, err)

	t.Run("Empty", func(t *testing.T) {
		ref, err := store.Save("avatar", "")
		assert.Nil(err)
		assert.Nil(ref)
	})

	t.Run("URL kept", func(t *testing.T) {
		ref, err := store.Save("avatar", "https://cdn.example.com/a.png")
		assert.Nil(err)
		if assert.NotNil(ref) {
			assert.Equal("https://cdn.example.com/a.png", *ref)
		}
	})

	t.Run("Data URI stored", func(t *testing.T) {
		ref, err := store.Save("avatar", pngDataURI(t))
		assert.Nil(err)
		if assert.NotNil(ref) {
			assert.True(strings.HasPrefix(*ref, PublicPrefix+"avatar_"))
			assert.True(strings.HasSuffix(*ref, ".jpg"))
			_, err := os.Stat(filepath.Join(dir, strings.TrimPrefix(*ref, PublicPrefix)))
			assert.Nil(err)
		}
	})

	t.Run("Unsized prefix kept", func(t *testing.T) {
		ref, err := store.Save("misc", pngDataURI(t))
		assert.Nil(err)
		if assert.NotNil(ref) {
			assert.True(strings.HasSuffix(*ref, ".png"))
		}
	})

	t.Run("Garbage rejected", func(t *testing.T) {
		_, err := store.Save("avatar", "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("nope")))
		assert.ErrorIs(err, ErrorInvalidImage)

		_, err = store.Save("avatar", "ftp://example.com/a.png")
		assert.ErrorIs(err, ErrorInvalidImage)

		_, err = store.Save("avatar", "data:image/png,plain")
		assert.ErrorIs(err, ErrorInvalidImage)
	})
}

func storedConfig(t *testing.T, dir string, ref *string) image.Config {
	t.Helper()
	require.NotNil(t, ref)
	f, err := os.Open(filepath.Join(dir, strings.TrimPrefix(*ref, PublicPrefix)))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg
}

func TestResize(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, err := New(dirConfig(dir))
	require.NoError(t, err)

	t.Run("Avatar cover", func(t *testing.T) {
		ref, err := store.Save("avatar", sizedPNG(t, 1200, 800))
		assert.Nil(err)
		cfg := storedConfig(t, dir, ref)
		assert.Equal(256, cfg.Width)
		assert.Equal(256, cfg.Height)
	})

	t.Run("Idea cover", func(t *testing.T) {
		ref, err := store.Save("idea", sizedPNG(t, 300, 900))
		assert.Nil(err)
		cfg := storedConfig(t, dir, ref)
		assert.Equal(600, cfg.Width)
		assert.Equal(600, cfg.Height)
	})

	t.Run("Community width", func(t *testing.T) {
		ref, err := store.Save("community", sizedPNG(t, 1600, 1000))
		assert.Nil(err)
		cfg := storedConfig(t, dir, ref)
		assert.Equal(800, cfg.Width)
		assert.Equal(500, cfg.Height)
	})
}

func TestRemove(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	store, err := New(dirConfig(dir))
	require.NoError(t, err)

	ref, err := store.Save("idea", pngDataURI(t))
	require.NoError(t, err)
	path := filepath.Join(dir, strings.TrimPrefix(*ref, PublicPrefix))
	_, err = os.Stat(path)
	require.NoError(t, err)

	store.Remove(ref)
	_, err = os.Stat(path)
	assert.True(os.IsNotExist(err))

	// already gone, a URL and nil are no-ops
	store.Remove(ref)
	url := "https://cdn.example.com/a.png"
	store.Remove(&url)
	store.Remove(nil)

	outside := filepath.Join(filepath.Dir(dir), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })
	escape := PublicPrefix + "../keep.txt"
	store.Remove(&escape)
	_, err = os.Stat(outside)
	assert.Nil(err)
}
