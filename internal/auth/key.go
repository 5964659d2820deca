package auth

import (
	"errors"
	"net/http"
)

// Header names recognized for the Financial Datasets API key. The Workspace
// sends the X- form; the bare form is accepted for manual callers.
const (
	HeaderKey    = "X-FINANCIAL-DATASETS-API-KEY"
	HeaderKeyAlt = "financial-datasets-api-key"

	// EnvKey is the environment variable read at startup as the fallback key.
	EnvKey = "FINANCIAL_DATASETS_API_KEY"
)

// ErrMissingKey means no API key was found in the request headers or the
// environment-supplied fallback.
var ErrMissingKey = errors.New("no API key in request headers or environment")

// Resolve returns the effective API key for a request. Precedence:
// HeaderKey, then HeaderKeyAlt, then the env fallback; first non-empty wins.
func Resolve(h http.Header, env string) (string, error) {
	if v := h.Get(HeaderKey); v != "" {
		return v, nil
	}
	if v := h.Get(HeaderKeyAlt); v != "" {
		return v, nil
	}
	if env != "" {
		return env, nil
	}
	return "", ErrMissingKey
}
