package storage

import (
	"context"
	"net/url"
)

// HostFetcher is an ImageFetcher that only serves some URLs
type HostFetcher interface {
	ImageFetcher
	Handles(u *url.URL) bool
}

// RoutingFetcher sends each URL to the first fetcher that handles it,
// falling back to a default fetcher
type RoutingFetcher struct {
	routes   []HostFetcher
	fallback ImageFetcher
}

// NewRoutingFetcher creates a fetcher that dispatches by URL
func NewRoutingFetcher(fallback ImageFetcher, routes ...HostFetcher) *RoutingFetcher {
	return &RoutingFetcher{routes: routes, fallback: fallback}
}

// FetchImage implements ImageFetcher
func (r *RoutingFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if u, err := url.Parse(imageURL); err == nil {
		for _, route := range r.routes {
			if route.Handles(u) {
				return route.FetchImage(ctx, imageURL)
			}
		}
	}
	return r.fallback.FetchImage(ctx, imageURL)
}
