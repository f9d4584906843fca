package validation

import (
	"net/url"
	"strings"

	apperrors "go-landing-scout/internal/errors"
)

// fetchableSchemes are the only schemes the image fetchers speak
var fetchableSchemes = map[string]bool{"http": true, "https": true}

// URLValidator decides whether an image URL may be downloaded at all.
// Rejections carry the remote_fetch_failed kind, the same as a failed download.
type URLValidator struct {
	hosts map[string]struct{} // nil accepts any host
}

// NewURLValidator builds a validator. With no hosts every host is accepted;
// otherwise the URL's host name must match one of them, ignoring case.
func NewURLValidator(allowedHosts ...string) *URLValidator {
	v := &URLValidator{}
	for _, h := range allowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if v.hosts == nil {
			v.hosts = make(map[string]struct{})
		}
		v.hosts[h] = struct{}{}
	}
	return v
}

// ValidateImageURL returns nil when imageURL may be fetched
func (v *URLValidator) ValidateImageURL(imageURL string) error {
	if reason, cause := v.reject(imageURL); reason != "" {
		return apperrors.NewRemoteFetchError(reason, cause)
	}
	return nil
}

// reject returns the client-facing reason a URL is refused, or "" if it is fine
func (v *URLValidator) reject(imageURL string) (string, error) {
	if strings.TrimSpace(imageURL) == "" {
		return "URL cannot be empty", nil
	}

	u, err := url.Parse(imageURL)
	switch {
	case err != nil:
		return "Invalid URL format", err
	case !fetchableSchemes[strings.ToLower(u.Scheme)]:
		return "URL scheme not allowed", nil
	case u.Host == "":
		return "URL must have a valid host", nil
	case !v.acceptsHost(u.Hostname()):
		return "URL host not allowed", nil
	}
	return "", nil
}

func (v *URLValidator) acceptsHost(host string) bool {
	if v.hosts == nil {
		return true
	}
	_, ok := v.hosts[strings.ToLower(host)]
	return ok
}
