package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-landing-scout/internal/errors"
)

func solidImage(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFileOutputStore_LoadBeforeSave(t *testing.T) {
	store, err := NewFileOutputStore(filepath.Join(t.TempDir(), "static", "processed_image.png"))
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestFileOutputStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "static")
	_, err := NewFileOutputStore(filepath.Join(dir, "processed_image.png"))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileOutputStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_image.png")
	store, err := NewFileOutputStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	require.NoError(t, store.Save(solidImage(color.NRGBA{255, 0, 0, 255})))
	require.NoError(t, store.Save(solidImage(color.NRGBA{0, 255, 0, 255})))

	data, err := store.Load()
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(3, 3).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0), b)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileOutputStore_ConcurrentSaves(t *testing.T) {
	store, err := NewFileOutputStore(filepath.Join(t.TempDir(), "processed_image.png"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint8) {
			defer wg.Done()
			assert.NoError(t, store.Save(solidImage(color.NRGBA{v, v, v, 255})))
		}(uint8(i * 30))
	}
	wg.Wait()

	data, err := store.Load()
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "slot must always hold a complete PNG")
}
