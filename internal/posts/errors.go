package posts

import (
	goerrors "github.com/goliatone/go-errors"
)

// TextCodeNoData marks a load that could not obtain the manifest.
const TextCodeNoData = "NO_DATA"

// ErrNoData is returned by Load when the manifest is unavailable.
var ErrNoData = goerrors.New("no post data available", goerrors.CategoryExternal).
	WithTextCode(TextCodeNoData)

// IsNoData reports whether err came from a failed manifest fetch.
func IsNoData(err error) bool {
	var e *goerrors.Error
	return goerrors.As(err, &e) && e.TextCode == TextCodeNoData
}

func noDataError(cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "post manifest unavailable").
		WithTextCode(TextCodeNoData)
}
