// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/testpro/testpro/core/cookie"
	"codeberg.org/testpro/testpro/core/untrusted"
)

type tagKey struct{}

// LangParam is the query parameter carrying a preferred UI language as a
// BCP 47 tag. The value "auto" ignores the [cookie.LangCookie] cookie.
const LangParam = "lang"

// WithTag returns a copy of ctx carrying t for later translations.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey{}, t)
}

// TagFrom returns the tag stored by WithTag, or the base locale.
// A nil ctx is allowed.
func TagFrom(ctx context.Context) language.Tag {
	if ctx == nil {
		return baseTag
	}

	if t, ok := ctx.Value(tagKey{}).(language.Tag); ok && t != (language.Tag{}) {
		return t
	}

	return baseTag
}

// FromRequest picks the loaded locale that best matches r. The [LangParam]
// query parameter wins over the language cookie, which wins over
// Accept-Language. Before Setup it returns the base locale.
func FromRequest(r *http.Request) language.Tag {
	if r == nil || matcher == nil {
		return baseTag
	}

	return bestSupported(preferences(r)...)
}

// preferences lists the language hints of r, strongest first.
func preferences(r *http.Request) []string {
	var out []string

	query := r.URL.Query().Get(LangParam)
	auto := strings.EqualFold(query, "auto")

	if query != "" && !auto {
		out = append(out, query)
	}

	if c := untrusted.GetCookie(r, cookie.LangCookie); c != "" && !auto {
		out = append(out, c)
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		out = append(out, header)
	}

	return out
}

// WithRequest is shorthand for WithTag(ctx, FromRequest(r)).
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}
