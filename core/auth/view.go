// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package auth defines the read-only authentication view that pages render from,
and the providers that resolve it from an incoming request.

Pages never write to a provider. They receive a View through the request
context and treat it as an input like any other.
*/
package auth

import (
	"net/http"
	"strings"
)

// User is the part of an identity that pages may display.
type User struct {
	Name string
}

// View is the projection of the identity provider's state for one request.
type View struct {
	IsAuthenticated bool
	User            *User
}

// Guest is the view for requests without a valid session.
var Guest = View{}

// FirstName returns the first space-separated segment of the user's name.
//
// A nil user or empty name yields "".
func (v View) FirstName() string {
	if v.User == nil {
		return ""
	}

	first, _, _ := strings.Cut(v.User.Name, " ")

	return first
}

// Provider resolves the authentication view for a request.
type Provider interface {
	View(r *http.Request) View
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(r *http.Request) View

// View implements Provider.
func (f ProviderFunc) View(r *http.Request) View {
	return f(r)
}

// Anonymous is a Provider that treats every request as a guest.
type Anonymous struct{}

// View implements Provider.
func (Anonymous) View(*http.Request) View {
	return Guest
}
