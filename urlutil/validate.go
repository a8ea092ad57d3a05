package urlutil

import (
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
)

// MaxURLLength is the RFC 2616 practical limit for URL length
const MaxURLLength = 2048

// ErrInvalidURL is the class of every validation failure.
var ErrInvalidURL = errors.New("invalid url")

// imageSchemes are the schemes an image reference may use. Remote schemes
// need a host; the others address files on this machine.
var imageSchemes = map[string]bool{
	"http":       true,
	"https":      true,
	"file":       false,
	"ms-appx":    false,
	"ms-appdata": false,
}

// IsURL reports whether ref carries a scheme separator and so names a URL
// rather than a file path.
func IsURL(ref string) bool {
	return strings.Contains(ref, "://")
}

// IsRemote reports whether rawURL is an http or https URL.
func IsRemote(rawURL string) bool {
	u, err := neturl.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Validate checks that rawURL is a downloadable http or https URL with a
// host and at most MaxURLLength characters.
func Validate(rawURL string) error {
	u, err := parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		if u.Scheme == "" {
			return fmt.Errorf("%w: url must use http:// or https://", ErrInvalidURL)
		}
		return fmt.Errorf("%w: url must use http:// or https://, got: %s", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url missing host", ErrInvalidURL)
	}
	return nil
}

// ValidateImage checks an image URL. Besides http and https it accepts
// file, ms-appx and ms-appdata URLs, which must carry a path.
func ValidateImage(rawURL string) error {
	u, err := parse(rawURL)
	if err != nil {
		return err
	}
	scheme := strings.ToLower(u.Scheme)
	remote, ok := imageSchemes[scheme]
	if !ok {
		return fmt.Errorf("%w: unsupported image scheme %q", ErrInvalidURL, u.Scheme)
	}
	if remote {
		return Validate(rawURL)
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("%w: %s url missing path", ErrInvalidURL, scheme)
	}
	return nil
}

func parse(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url cannot be empty", ErrInvalidURL)
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("%w: url exceeds maximum length of %d characters", ErrInvalidURL, MaxURLLength)
	}
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return u, nil
}
