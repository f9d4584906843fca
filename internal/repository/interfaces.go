package repository

import (
	"context"
	"image"
)

// ImageRepository turns uploaded or remote image bytes into the fixed-size
// grayscale grid the analyzer works on
type ImageRepository interface {
	// LoadFromUpload decodes bytes received in a multipart upload
	LoadFromUpload(ctx context.Context, data []byte) (*image.Gray, error)

	// LoadFromURL validates the URL, downloads it once and decodes the body
	LoadFromURL(ctx context.Context, imageURL string) (*image.Gray, error)
}

// URLValidator rejects URLs that must not be fetched
type URLValidator interface {
	ValidateImageURL(imageURL string) error
}
