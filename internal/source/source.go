// Package source supplies the post manifest and post documents. Sources
// exist for HTTP hosts, local directories and S3 buckets, and any of them
// can be wrapped with a document cache.
package source

import (
	"context"
	"fmt"
	"io"

	goerrors "github.com/goliatone/go-errors"
)

// Source is the content backend read by the post repository and the
// article loader.
type Source interface {
	// Manifest lists the post files to load.
	Manifest(ctx context.Context) ([]string, error)
	// Document returns the raw content of one post file.
	Document(ctx context.Context, file string) ([]byte, error)
}

// Invalidator is implemented by sources holding cached documents.
type Invalidator interface {
	Invalidate()
}

const (
	TextCodeNotFound        = "SOURCE_NOT_FOUND"
	TextCodeUnavailable     = "SOURCE_UNAVAILABLE"
	TextCodeManifestInvalid = "MANIFEST_INVALID"
)

var (
	// ErrNotFound is the template for missing manifest or document errors.
	ErrNotFound = goerrors.New("source file not found", goerrors.CategoryNotFound).
		WithTextCode(TextCodeNotFound)
	// ErrManifestInvalid is the template for manifests failing validation.
	ErrManifestInvalid = goerrors.New("invalid post manifest", goerrors.CategoryBadInput).
		WithTextCode(TextCodeManifestInvalid)
)

const maxDocumentBytes = 8 << 20

// readDocument reads at most limit bytes of r. Longer bodies are rejected
// rather than cut off.
func readDocument(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, unavailableError(err, name)
	}
	if int64(len(data)) > limit {
		return nil, unavailableError(fmt.Errorf("document exceeds %d bytes", limit), name)
	}
	return data, nil
}

// IsNotFound reports whether err means the requested file does not exist.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}

func notFoundError(name string) error {
	return goerrors.New(fmt.Sprintf("%s not found", name), goerrors.CategoryNotFound).
		WithTextCode(TextCodeNotFound).
		WithMetadata(map[string]any{"file": name})
}

func unavailableError(cause error, name string) error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "fetch "+name).
		WithTextCode(TextCodeUnavailable).
		WithMetadata(map[string]any{"file": name})
}
