// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"codeberg.org/testpro/testpro/i18n"
)

func TestErrorPage(t *testing.T) {
	t.Parallel()

	doc, _ := renderDoc(t, context.Background(), Error(ErrorData{
		StatusCode: http.StatusTooManyRequests,
		Title:      "Too many requests",
		Message:    "Please slow down & try again.",
	}))

	assert.Equal(t, "429", strings.TrimSpace(doc.Find("main p").First().Text()))
	assert.Equal(t, "Too many requests", doc.Find("h1").Text())
	assert.Contains(t, doc.Find("main").Text(), "Please slow down & try again.")
	assert.Equal(t, "/", doc.Find("main a").AttrOr("href", ""))
	assert.Equal(t, "Too many requests - TestPro", doc.Find("title").Text())
}

func TestErrorPageDefaults(t *testing.T) {
	t.Parallel()

	doc, _ := renderDoc(t, context.Background(), Error(ErrorData{StatusCode: http.StatusNotFound}))
	assert.Equal(t, "Not Found", doc.Find("h1").Text())
	assert.Equal(t, 2, doc.Find("main p").Length()+doc.Find("main a").Length())

	doc, _ = renderDoc(t, context.Background(), Error(ErrorData{}))
	assert.Equal(t, "Error", doc.Find("h1").Text())
	assert.Zero(t, doc.Find("main p").Length())
}

func TestErrorPageSpanish(t *testing.T) {
	t.Parallel()

	ctx := i18n.WithTag(context.Background(), language.Spanish)

	doc, _ := renderDoc(t, ctx, Error(ErrorData{StatusCode: http.StatusInternalServerError, Title: "x"}))
	assert.Equal(t, "Volver a TestPro", doc.Find("main a").Text())
}
