package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-landing-scout/internal/errors"
)

func TestHTTPImageFetcher_StatusHandling(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectError bool
	}{
		{name: "Success", status: http.StatusOK},
		{name: "Not found", status: http.StatusNotFound, expectError: true},
		{name: "Server error", status: http.StatusInternalServerError, expectError: true},
		{name: "Bad gateway", status: http.StatusBadGateway, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requestCount int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requestCount, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte("payload"))
			}))
			defer server.Close()

			fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
			data, err := fetcher.FetchImage(context.Background(), server.URL)

			// no retries, ever
			assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteFetchFailed))
				assert.Contains(t, err.Error(), fmt.Sprintf("status code %d", tt.status))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("payload"), data)
		})
	}
}

func TestHTTPImageFetcher_InvalidURL(t *testing.T) {
	fetcher := NewHTTPImageFetcher(time.Second, 1024)

	_, err := fetcher.FetchImage(context.Background(), "://missing-scheme")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteFetchFailed))
}

func TestHTTPImageFetcher_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	fetcher := NewHTTPImageFetcher(time.Second, 1024)
	_, err := fetcher.FetchImage(context.Background(), serverURL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteFetchFailed))
}

func TestHTTPImageFetcher_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidImage))
}

func TestHTTPImageFetcher_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
	_, err := fetcher.FetchImage(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteFetchFailed))
}

type stubFetcher struct {
	name  string
	host  string
	calls int
}

func (s *stubFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	s.calls++
	return []byte(s.name), nil
}

func (s *stubFetcher) Handles(u *url.URL) bool {
	return u.Hostname() == s.host
}

func TestRoutingFetcher(t *testing.T) {
	fallback := &stubFetcher{name: "http"}
	blob := &stubFetcher{name: "blob", host: "lunar.blob.core.windows.net"}
	router := NewRoutingFetcher(fallback, blob)

	data, err := router.FetchImage(context.Background(), "https://lunar.blob.core.windows.net/maps/crater.png")
	require.NoError(t, err)
	assert.Equal(t, "blob", string(data))

	data, err = router.FetchImage(context.Background(), "http://example.com/crater.png")
	require.NoError(t, err)
	assert.Equal(t, "http", string(data))

	assert.Equal(t, 1, blob.calls)
	assert.Equal(t, 1, fallback.calls)
}
