// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrInvalidLink is returned by ParseLink for unsafe or malformed destinations.
var ErrInvalidLink = errors.New("link must be an absolute path, a fragment or an http(s) URL")

// ParseURL parses a URL string that must carry both a scheme and a host.
// A trailing slash on the path is removed.
func ParseURL(urlStr, urlType string) (*url.URL, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s URL: %w", urlType, err)
	}

	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf(
			"%s URL is invalid: %s. Please specify a complete URL with scheme and host, e.g. https://example.com",
			urlType,
			urlStr)
	}

	parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/")

	return parsedURL, nil
}

// ParseLink validates a navigation destination.
//
// Same-origin absolute paths ("/dashboard"), fragments ("#features") and
// http or https URLs are accepted. Scheme-relative and other schemes are not.
func ParseLink(raw, linkType string) (string, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(raw, "#"):
		return raw, nil
	case SanitizeReturnPath(raw) != "":
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%s %q: %w", linkType, raw, ErrInvalidLink)
	}

	return u.String(), nil
}

// GetQueryParam retrieves the value of a query parameter by name.
//
// If the parameter is not present, it returns the provided default value or an empty string.
func GetQueryParam(r *http.Request, name string, defaultValue ...string) string {
	v := r.URL.Query().Get(name)
	if v != "" {
		return v
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}

	return ""
}

// GetOriginFromRequest returns the origin (scheme + host) of an HTTP request.
//
// The scheme comes from X-Forwarded-Proto, then the TLS state, defaulting to "http".
func GetOriginFromRequest(r *http.Request) string {
	scheme := "http"

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

// SanitizeReturnPath ensures that s is a same-origin absolute path.
// Returns "" if the value is unsafe.
func SanitizeReturnPath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}

	if !strings.HasPrefix(s, "/") {
		return ""
	}

	return s
}
