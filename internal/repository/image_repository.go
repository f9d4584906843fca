package repository

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	apperrors "go-landing-scout/internal/errors"
	"go-landing-scout/internal/storage"
)

// imageRepository implements ImageRepository on top of an ImageFetcher
type imageRepository struct {
	fetcher   storage.ImageFetcher
	validator URLValidator
	size      int
}

// NewImageRepository creates a repository that resizes every image to size×size
func NewImageRepository(fetcher storage.ImageFetcher, validator URLValidator, size int) ImageRepository {
	return &imageRepository{
		fetcher:   fetcher,
		validator: validator,
		size:      size,
	}
}

// LoadFromUpload decodes uploaded bytes
func (r *imageRepository) LoadFromUpload(ctx context.Context, data []byte) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, apperrors.NewInvalidImageError(MsgEmptyUpload, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.decode(data, MsgUndecodableUpload)
}

// LoadFromURL validates, downloads and decodes a remote image
func (r *imageRepository) LoadFromURL(ctx context.Context, imageURL string) (*image.Gray, error) {
	imageURL = strings.TrimSpace(imageURL)
	if r.validator != nil {
		if err := r.validator.ValidateImageURL(imageURL); err != nil {
			return nil, err
		}
	}

	data, err := r.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperrors.NewInvalidImageError(MsgEmptyRemote, nil)
	}
	return r.decode(data, MsgUndecodableRemote)
}

// decode sniffs, decodes, resizes and converts the bytes to 8-bit gray
func (r *imageRepository) decode(data []byte, failureMessage string) (*image.Gray, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperrors.NewInvalidImageError(failureMessage,
			fmt.Errorf("unsupported content type %s", mt.String()))
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.NewInvalidImageError(failureMessage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, apperrors.NewInvalidImageError(failureMessage, fmt.Errorf("image has no pixels"))
	}

	// Gray first so resampling averages intensities, matching a grayscale read
	gray := toGray(img)
	if bounds.Dx() != r.size || bounds.Dy() != r.size {
		gray = toGray(imaging.Resize(gray, r.size, r.size, imaging.Box))
	}
	return gray, nil
}

// toGray converts any image to an *image.Gray anchored at the origin
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}
