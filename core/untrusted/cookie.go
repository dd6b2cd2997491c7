// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/url"

	"codeberg.org/testpro/testpro/core/cookie"
)

// GetCookie returns the unescaped value of the named cookie, or "" if the
// cookie is absent or malformed.
func GetCookie(r *http.Request, name cookie.CookieName) string {
	c, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}

	return value
}
