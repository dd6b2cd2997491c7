// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"codeberg.org/testpro/testpro/core/devid"
)

func TestMain(m *testing.M) {
	if err := LoadIcons(os.DirFS("../../.."), IconsDir); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func render(t *testing.T, node g.Node) *goquery.Document {
	t.Helper()

	var b strings.Builder
	require.NoError(t, node.Render(&b))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	return doc
}

func TestDevAttributesOnlyWhenInstrumented(t *testing.T) {
	t.Parallel()

	dev := Registered(devid.HeroTitle)

	plain := render(t, Kit{}.H1("text-5xl", dev, g.Text("Title")))
	sel := plain.Find("h1")
	assert.Equal(t, "text-5xl", sel.AttrOr("class", ""))
	_, has := sel.Attr("data-dev-id")
	assert.False(t, has)

	instrumented := render(t, Kit{Instrument: true}.H1("text-5xl", dev, g.Text("Title")))
	sel = instrumented.Find("h1")
	assert.Equal(t, "hero-title", sel.AttrOr("data-dev-id", ""))
	assert.Equal(t, "Hero Title", sel.AttrOr("data-dev-name", ""))
	assert.NotEmpty(t, sel.AttrOr("data-dev-description", ""))
}

func TestInertDevWritesNothing(t *testing.T) {
	t.Parallel()

	k := Kit{Instrument: true}

	for _, dev := range []Dev{NoDev, {ID: devid.NoID, Name: "ignored"}} {
		doc := render(t, k.Div("mb-4", dev))
		_, has := doc.Find("div").Attr("data-dev-id")
		assert.False(t, has, "%+v", dev)
	}
}

func TestRegisteredUnknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Dev{ID: "not-registered"}, Registered("not-registered"))
	assert.Equal(t, "Stat Card 1", Registered(devid.Resolve(devid.StatCard, 0)).Name)
}

func TestElements(t *testing.T) {
	t.Parallel()

	k := Kit{}

	tests := []struct {
		node g.Node
		tag  string
	}{
		{k.Container("", NoDev), "div"},
		{k.Header("", NoDev), "header"},
		{k.Nav("", NoDev), "nav"},
		{k.Section("", NoDev), "section"},
		{k.H1("", NoDev), "h1"},
		{k.H2("", NoDev), "h2"},
		{k.H3("", NoDev), "h3"},
		{k.P("", NoDev), "p"},
		{k.Span("", NoDev), "span"},
		{k.Div("", NoDev), "div"},
		{k.Footer("", NoDev), "footer"},
		{k.Button(VariantGhost, "", NoDev), "button"},
		{k.LinkButton("/login", VariantGhost, "", NoDev), "a"},
		{k.Card("", NoDev), "div"},
		{k.CardContent("", NoDev), "div"},
		{k.Badge("", NoDev), "div"},
	}

	for _, tt := range tests {
		doc := render(t, tt.node)
		assert.Equal(t, 1, doc.Find("body > "+tt.tag).Length(), tt.tag)
	}
}

func TestClassMerging(t *testing.T) {
	t.Parallel()

	doc := render(t, Kit{}.Card("  bg-white/5 p-6 ", NoDev))
	assert.Equal(t, cardBase+" bg-white/5 p-6", doc.Find("div").AttrOr("class", ""))

	assert.Empty(t, cx("", "  "))
}

func TestButtons(t *testing.T) {
	t.Parallel()

	k := Kit{}

	doc := render(t, k.Button(VariantOutline, "px-8", NoDev, g.Text("Learn More")))
	btn := doc.Find("button")
	assert.Equal(t, "button", btn.AttrOr("type", ""))
	assert.Contains(t, btn.AttrOr("class", ""), "border-input")
	assert.True(t, strings.HasSuffix(btn.AttrOr("class", ""), "px-8"))

	doc = render(t, k.LinkButton("/register?next=%2F", "unknown", "", NoDev, g.Text("Start <Testing>")))
	link := doc.Find("a")
	assert.Equal(t, "/register?next=%2F", link.AttrOr("href", ""))
	assert.Equal(t, "Start <Testing>", link.Text())
	assert.Contains(t, link.AttrOr("class", ""), variantClasses[VariantDefault])
}

func TestIcon(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"test-tube", "bug", "bar-chart-3", "shield", "target", "zap", "check-circle", "users", "user"} {
		assert.True(t, HasIcon(name), name)
	}

	doc := render(t, Kit{}.Icon("shield", `w-8 h-8 "x"`, Registered(devid.HeroTitle)))
	svg := doc.Find("svg")
	require.Equal(t, 1, svg.Length())
	assert.Equal(t, `w-8 h-8 "x"`, svg.AttrOr("class", ""))
	assert.Equal(t, "true", svg.AttrOr("aria-hidden", ""))
	_, has := svg.Attr("data-dev-id")
	assert.False(t, has)

	doc = render(t, Kit{Instrument: true}.Icon("shield", "", Registered(devid.HeroTitle)))
	assert.Equal(t, "hero-title", doc.Find("svg").AttrOr("data-dev-id", ""))
}

func TestIconUnknownRendersNothing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Kit{}.Icon("does-not-exist", "w-4", NoDev))
}

func TestLoadIconsErrors(t *testing.T) {
	// LoadIcons replaces the package cache, so this test restores it.
	saved := iconCache
	t.Cleanup(func() { iconCache = saved })

	err := LoadIcons(fstest.MapFS{}, "icons")
	require.Error(t, err)

	err = LoadIcons(fstest.MapFS{"icons/bad.svg": {Data: []byte("<html>")}}, "icons")
	require.ErrorIs(t, err, errNotSVG)
}
