// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package request_context

import (
	"net/http"

	"codeberg.org/testpro/testpro/core/cookie"
	"codeberg.org/testpro/testpro/core/untrusted"
	"codeberg.org/testpro/testpro/server/utils"
)

// PageCommonData holds request facts shared by handlers and logging.
//
//	rc := request_context.FromRequest(r)
//	path := rc.CommonData.CurrentPath
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// CurrentPath is the URL path from request (e.g., "/").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// Cookies holds the values of the cookies scripts may read.
	// HttpOnly cookies such as the session token are never copied here.
	Cookies map[cookie.CookieName]string
}

// PopulatePageCommonData fills data from the request.
func PopulatePageCommonData(r *http.Request, data *PageCommonData) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}

	data.Cookies = make(map[cookie.CookieName]string, len(cookie.AllCookieNames))

	for _, name := range cookie.AllCookieNames {
		if cookie.IsHttpOnly(name) {
			continue
		}

		if val := untrusted.GetCookie(r, name); val != "" {
			data.Cookies[name] = val
		}
	}
}
