package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-landing-scout/internal/errors"
)

// AzureImageFetcher downloads images from one storage account with shared-key
// credentials. URLs take the form https://<account>.blob.core.windows.net/<container>/<blob>.
type AzureImageFetcher struct {
	client   *azblob.Client
	host     string
	maxBytes int64
}

// NewAzureImageFetcher creates a blob fetcher for the given account
func NewAzureImageFetcher(accountName, accountKey string, maxBytes int64) (*AzureImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	host := fmt.Sprintf("%s.blob.core.windows.net", accountName)
	client, err := azblob.NewClientWithSharedKeyCredential("https://"+host, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	return &AzureImageFetcher{client: client, host: host, maxBytes: maxBytes}, nil
}

// Handles reports whether u points into this fetcher's storage account
func (s *AzureImageFetcher) Handles(u *url.URL) bool {
	return strings.EqualFold(u.Hostname(), s.host)
}

// FetchImage downloads the blob named by blobURL
func (s *AzureImageFetcher) FetchImage(ctx context.Context, blobURL string) ([]byte, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, fmt.Errorf("invalid blob URL: %w", err))
	}

	containerName, blobName, err := parseBlobPath(parsedURL.Path)
	if err != nil {
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, err)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			err = fmt.Errorf("unexpected status code %d (%s)", respErr.StatusCode, respErr.ErrorCode)
		}
		return nil, apperrors.NewRemoteFetchError(downloadFailedMessage, err)
	}

	body := downloadResponse.Body
	defer body.Close()

	return readLimited(body, s.maxBytes)
}

// parseBlobPath splits "/container/dir/blob.png" into container and blob name
func parseBlobPath(path string) (string, string, error) {
	trimmed := strings.TrimPrefix(path, "/")
	containerName, blobName, ok := strings.Cut(trimmed, "/")
	if !ok || containerName == "" || blobName == "" {
		return "", "", fmt.Errorf("blob URL path %q must be /<container>/<blob>", path)
	}
	return containerName, blobName, nil
}
