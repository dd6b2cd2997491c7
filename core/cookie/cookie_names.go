// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names read by this application.
*/
package cookie

type CookieName string

// Cookie names defined as constants.
const (
	// SessionCookie carries the v4.public token issued by the identity provider.
	// Its name can be overridden through config.Auth.CookieName.
	SessionCookie CookieName = "TestPro-Session" // #nosec:G101 - false positive

	// LangCookie stores the preferred UI language as a BCP 47 tag.
	LangCookie CookieName = "Lang"
)

// AllCookieNames defines all cookies that the application reads.
var AllCookieNames = []CookieName{
	SessionCookie,
	LangCookie,
}

// IsHttpOnly reports whether scripts must be denied access to the cookie.
//
//nolint:revive // matches http.Cookie.HttpOnly
func IsHttpOnly(name CookieName) bool {
	return name == SessionCookie
}
