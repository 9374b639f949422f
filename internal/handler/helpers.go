package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskboards/boards/internal/domain"
)

// parseBoardId parses a path id. Non-numeric and non-positive ids cannot
// name a stored board, so callers fall back to their not-found outcome.
func parseBoardId(param string) (domain.BoardId, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathParam returns the decoded value of a URL param. chi matches against
// RawPath when the path holds escaped characters such as %2F, and then hands
// back the still-escaped segment.
func pathParam(r *http.Request, key string) string {
	param := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return param
	}
	if decoded, err := url.PathUnescape(param); err == nil {
		return decoded
	}
	return param
}
