package repository

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-landing-scout/internal/errors"
	"go-landing-scout/pkg/validation"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestLoadFromUpload_Empty(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{}, nil, 512)

	_, err := repo.LoadFromUpload(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidImage))
	assert.Equal(t, MsgEmptyUpload, apperrors.UserMessage(err))
}

func TestLoadFromUpload_NotAnImage(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{}, nil, 512)

	_, err := repo.LoadFromUpload(context.Background(), []byte("definitely not pixels"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidImage))
	assert.Equal(t, MsgUndecodableUpload, apperrors.UserMessage(err))
}

func TestLoadFromUpload_TruncatedPNG(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{}, nil, 512)
	data := encodePNG(t, uniformGray(64, 64, 10))

	_, err := repo.LoadFromUpload(context.Background(), data[:len(data)/2])
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidImage))
}

func TestLoadFromUpload_ResizesToSquare(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{}, nil, 512)

	gray, err := repo.LoadFromUpload(context.Background(), encodePNG(t, uniformGray(300, 120, 90)))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 512, 512), gray.Bounds())
	for _, p := range []image.Point{{0, 0}, {255, 255}, {511, 511}} {
		assert.InDelta(t, 90, int(gray.GrayAt(p.X, p.Y).Y), 1)
	}
}

func TestLoadFromUpload_ExactSizeKeepsPixels(t *testing.T) {
	src := uniformGray(512, 512, 0)
	src.SetGray(10, 20, color.Gray{Y: 200})
	repo := NewImageRepository(&fakeFetcher{}, nil, 512)

	gray, err := repo.LoadFromUpload(context.Background(), encodePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, src.Pix, gray.Pix)
}

func TestLoadFromUpload_ColorJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 255
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 95}))

	repo := NewImageRepository(&fakeFetcher{}, nil, 512)
	gray, err := repo.LoadFromUpload(context.Background(), buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 512, gray.Bounds().Dx())
	assert.InDelta(t, 128, int(gray.GrayAt(256, 256).Y), 3)
}

func TestLoadFromURL(t *testing.T) {
	validPNG := encodePNG(t, uniformGray(32, 32, 40))

	tests := []struct {
		name      string
		url       string
		fetcher   *fakeFetcher
		wantType  apperrors.ErrorType
		wantMsg   string
		wantCalls int
	}{
		{
			name:      "Success",
			url:       "https://example.com/moon.png",
			fetcher:   &fakeFetcher{data: validPNG},
			wantCalls: 1,
		},
		{
			name:     "Rejected scheme",
			url:      "ftp://example.com/moon.png",
			fetcher:  &fakeFetcher{data: validPNG},
			wantType: apperrors.ErrorTypeRemoteFetchFailed,
		},
		{
			name:      "Download failure propagates",
			url:       "https://example.com/moon.png",
			fetcher:   &fakeFetcher{err: apperrors.NewRemoteFetchError("Failed to download the image from the URL.", nil)},
			wantType:  apperrors.ErrorTypeRemoteFetchFailed,
			wantMsg:   "Failed to download the image from the URL.",
			wantCalls: 1,
		},
		{
			name:      "HTML instead of image",
			url:       "https://example.com/page",
			fetcher:   &fakeFetcher{data: []byte("<!DOCTYPE html><html><body>hi</body></html>")},
			wantType:  apperrors.ErrorTypeInvalidImage,
			wantMsg:   MsgUndecodableRemote,
			wantCalls: 1,
		},
		{
			name:      "Empty body",
			url:       "https://example.com/empty",
			fetcher:   &fakeFetcher{data: []byte{}},
			wantType:  apperrors.ErrorTypeInvalidImage,
			wantMsg:   MsgEmptyRemote,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewImageRepository(tt.fetcher, validation.NewURLValidator(), 512)

			gray, err := repo.LoadFromURL(context.Background(), tt.url)
			assert.Equal(t, tt.wantCalls, tt.fetcher.calls)

			if tt.wantType != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantType))
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 512, 512), gray.Bounds())
		})
	}
}
