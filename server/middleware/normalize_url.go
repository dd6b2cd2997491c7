// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/testpro/testpro/i18n"
)

// NormalizeURL is a middleware that handles URL normalization by:
//  1. Rewriting a leading locale segment ("/es/...") into the lang query parameter.
//  2. Removing trailing slashes from URLs (except root).
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if locale, rest, ok := localePrefix(r.URL.Path); ok {
		removeLocalePrefix(w, r, locale, rest)

		return
	}

	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL

	target.Path = singleLeadingSlash(strings.TrimRight(target.Path, "/"))

	http.Redirect(w, r, target.RequestURI(), http.StatusPermanentRedirect)
}

// localePrefix reports whether path starts with a segment naming a loaded
// locale. rest is the remaining path, at least "/".
func localePrefix(path string) (locale, rest string, ok bool) {
	segment, rest, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if segment == "" {
		return "", "", false
	}

	tag, err := language.Parse(segment)
	if err != nil {
		return "", "", false
	}

	for _, supported := range i18n.Languages() {
		if supported == tag {
			return tag.String(), "/" + rest, true
		}
	}

	return "", "", false
}

// removeLocalePrefix redirects to rest, carrying locale in the lang query parameter.
func removeLocalePrefix(w http.ResponseWriter, r *http.Request, locale, rest string) {
	target := *r.URL
	target.Path = singleLeadingSlash(rest)

	query := target.Query()
	query.Set(i18n.LangParam, locale)
	target.RawQuery = query.Encode()

	http.Redirect(w, r, target.RequestURI(), http.StatusFound)
}

// singleLeadingSlash keeps redirects on this host: "//host" would be read as
// a network-path reference.
func singleLeadingSlash(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}
