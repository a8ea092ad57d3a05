// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cache keeps downloaded notification images on disk so that
// deliveries which can only show local files can show remote images too.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jongio/toastnotifier/fileutil"
	"github.com/jongio/toastnotifier/urlutil"
)

const (
	// DefaultTTL is how long a downloaded image is reused.
	DefaultTTL = 24 * time.Hour
	// DefaultMaxSize bounds a single downloaded image.
	DefaultMaxSize = 4 << 20

	defaultHTTPTimeout = 10 * time.Second
	unknownExt         = ".img"
)

// ErrDownload is returned when an image cannot be fetched.
var ErrDownload = errors.New("image download failed")

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true,
}

// Options configures a cache Manager.
type Options struct {
	Dir     string        // Directory to store images in
	TTL     time.Duration // How long an entry is reused; 0 keeps entries forever
	MaxSize int64         // Largest accepted download
	Client  *http.Client
}

// Stats tracks cache hit/miss statistics.
type Stats struct {
	Hits   int
	Misses int
	Errors int
}

// Manager downloads images into a directory and reuses them until they
// expire. It is safe for concurrent use.
type Manager struct {
	dir     string
	ttl     time.Duration
	maxSize int64
	client  *http.Client
	mu      sync.Mutex
	statsMu sync.Mutex
	stats   Stats
}

// DefaultDir returns the per-user image cache directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "toastnotifier", "images")
}

// NewManager creates a new cache manager.
func NewManager(opts Options) *Manager {
	if opts.Dir == "" {
		opts.Dir = DefaultDir()
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Manager{
		dir:     opts.Dir,
		ttl:     opts.TTL,
		maxSize: opts.MaxSize,
		client:  opts.Client,
	}
}

// Fetch returns the path of a local copy of the image at rawURL,
// downloading it when there is no fresh copy.
func (m *Manager) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := urlutil.Validate(rawURL); err != nil {
		m.recordError()
		return "", err
	}
	rawURL = strings.TrimSpace(rawURL)

	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.keyPath(rawURL)
	if m.fresh(p) {
		m.recordHit()
		return p, nil
	}
	m.recordMiss()

	data, err := m.download(ctx, rawURL)
	if err != nil {
		m.recordError()
		return "", err
	}
	if err := fileutil.AtomicWriteFile(p, data, fileutil.FilePermission); err != nil {
		m.recordError()
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return p, nil
}

func (m *Manager) fresh(p string) bool {
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return m.ttl <= 0 || time.Since(info.ModTime()) <= m.ttl
}

func (m *Manager) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrDownload, rawURL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, m.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if int64(len(data)) > m.maxSize {
		return nil, fmt.Errorf("%w: %w: image exceeds %d bytes", ErrDownload, fileutil.ErrFileTooLarge, m.maxSize)
	}
	return data, nil
}

// Invalidate removes the cached copy of rawURL.
func (m *Manager) Invalidate(rawURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.keyPath(strings.TrimSpace(rawURL))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Clear removes all cached images.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		p := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// GetStats returns cache hit/miss statistics.
func (m *Manager) GetStats() Stats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.stats
}

// keyPath names the cache file of rawURL after its SHA256 and keeps the
// image extension so viewers recognize the type.
func (m *Manager) keyPath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return filepath.Join(m.dir, hex.EncodeToString(sum[:])+imageExt(rawURL))
}

func imageExt(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return unknownExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if !imageExts[ext] {
		return unknownExt
	}
	return ext
}

func (m *Manager) recordHit() {
	m.statsMu.Lock()
	m.stats.Hits++
	m.statsMu.Unlock()
}

func (m *Manager) recordMiss() {
	m.statsMu.Lock()
	m.stats.Misses++
	m.statsMu.Unlock()
}

func (m *Manager) recordError() {
	m.statsMu.Lock()
	m.stats.Errors++
	m.statsMu.Unlock()
}
