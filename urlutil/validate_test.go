package urlutil

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errMsg  string
	}{
		{name: "https", url: "https://example.com/logo.png"},
		{name: "http with port", url: "http://localhost:8080/a.png"},
		{name: "surrounding whitespace", url: "  https://example.com/a.png  "},
		{name: "empty", url: "   ", wantErr: true, errMsg: "cannot be empty"},
		{name: "no scheme", url: "example.com/a.png", wantErr: true, errMsg: "must use http:// or https://"},
		{name: "ftp", url: "ftp://example.com/a.png", wantErr: true, errMsg: "got: ftp"},
		{name: "missing host", url: "https:///a.png", wantErr: true, errMsg: "missing host"},
		{name: "bad escape", url: "https://example.com/%zz", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", MaxURLLength), wantErr: true, errMsg: "maximum length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("Validate(%q) error = %v, want ErrInvalidURL", tt.url, err)
			}
			if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate(%q) error = %q, want it to contain %q", tt.url, err, tt.errMsg)
			}
		})
	}
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://example.com/logo.png"},
		{url: "file:///C:/images/logo.png"},
		{url: "ms-appx:///Assets/logo.png"},
		{url: "ms-appdata:///local/logo.png"},
		{url: "MS-APPX:///Assets/logo.png"},
		{url: "file:///", wantErr: true},
		{url: "ms-appx://", wantErr: true},
		{url: "https:///logo.png", wantErr: true},
		{url: "javascript://alert(1)", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateImage(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImage(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.png": true,
		"ms-appx:///a.png":          true,
		`C:\images\a.png`:           false,
		"/tmp/a.png":                false,
		"":                          false,
	}
	for ref, want := range tests {
		if got := IsURL(ref); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com/a.png":  true,
		"file:///tmp/a.png":         false,
		"ms-appx:///a.png":          false,
		"/tmp/a.png":                false,
		"https://example.com/%zz":   false,
	}
	for ref, want := range tests {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", ref, got, want)
		}
	}
}
