package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPConfig describes a static host serving the posts directory.
type HTTPConfig struct {
	// BaseURL is the site root, e.g. https://blog.example.com.
	BaseURL string
	// PostsPath is the directory holding documents and the manifest.
	PostsPath string
	IndexFile string
	Timeout   time.Duration
	Client    *http.Client
}

// HTTPSource fetches content over HTTP GET.
type HTTPSource struct {
	base      string
	indexFile string
	client    *http.Client
	maxBytes  int64
	now       func() time.Time
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource validates cfg and returns a source rooted at
// BaseURL/PostsPath.
func NewHTTPSource(cfg HTTPConfig) (*HTTPSource, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("source: invalid base url %q", cfg.BaseURL)
	}

	root := strings.TrimRight(base.String(), "/")
	if posts := strings.Trim(cfg.PostsPath, "/"); posts != "" {
		root += "/" + escapeSegments(posts)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	indexFile := strings.TrimSpace(cfg.IndexFile)
	if indexFile == "" {
		indexFile = DefaultIndexFile
	}

	return &HTTPSource{
		base:      root,
		indexFile: indexFile,
		client:    client,
		maxBytes:  maxDocumentBytes,
		now:       time.Now,
	}, nil
}

// Manifest fetches the index with a "t" query parameter so intermediaries
// never serve a stale copy.
func (s *HTTPSource) Manifest(ctx context.Context) ([]string, error) {
	target := s.base + "/" + escapeSegments(s.indexFile) +
		"?t=" + strconv.FormatInt(s.now().UnixMilli(), 10)
	data, err := s.get(ctx, target, s.indexFile)
	if err != nil {
		return nil, err
	}
	return DecodeManifest(data)
}

// Document fetches one post. Each path segment of file is percent-encoded.
func (s *HTTPSource) Document(ctx context.Context, file string) ([]byte, error) {
	return s.get(ctx, s.base+"/"+escapeSegments(file), file)
}

func (s *HTTPSource) get(ctx context.Context, target, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, unavailableError(err, name)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, unavailableError(err, name)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFoundError(name)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, unavailableError(fmt.Errorf("unexpected status %d", resp.StatusCode), name)
	}

	return readDocument(resp.Body, s.maxBytes, name)
}

func escapeSegments(value string) string {
	segments := strings.Split(strings.TrimPrefix(value, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
