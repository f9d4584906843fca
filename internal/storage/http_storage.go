package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-landing-scout/internal/errors"
)

// downloadFailedMessage is reported for every unsuccessful remote fetch
const downloadFailedMessage = "Failed to download the image from the URL."

// ImageFetcher downloads raw image bytes from a remote location
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPImageFetcher implements ImageFetcher with a single plain GET per image
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPImageFetcher creates an HTTP image fetcher.
// Bodies larger than maxBytes are rejected.
func NewHTTPImageFetcher(timeout time.Duration, maxBytes int64) *HTTPImageFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchImage performs one GET request. Any non-200 status is a failure;
// there are no retries.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, fmt.Errorf("invalid URL: %w", err))
	}

	req.Header.Set("Accept", "image/png, image/jpeg, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Landing-Scout/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage,
			fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}

	return readLimited(resp.Body, h.maxBytes)
}

// readLimited reads at most maxBytes, failing if the stream is longer
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, apperrors.NewInvalidImageError(
			fmt.Sprintf("Image exceeds the %d byte limit.", maxBytes), nil)
	}
	return data, nil
}
