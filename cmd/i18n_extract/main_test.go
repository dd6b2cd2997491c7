// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePOT(t *testing.T) {
	t.Parallel()

	refs := map[key][]ref{
		{id: "Why Choose TestPro?"}: {
			{file: "assets/views/landing.go", line: 40},
			{file: "assets/views/landing.go", line: 12},
			{file: "assets/views/landing.go", line: 12},
		},
	}
	refs[key{id: "Docs"}] = []ref{{file: "assets/views/landing.go", line: 7}}
	refs[key{ctx: "nav", id: "Home"}] = []ref{{file: "a.go", line: 1}}
	refs[key{id: "{{.N}} test", plural: "{{.N}} tests"}] = []ref{{file: "b.go", line: 2}}

	var b strings.Builder
	require.NoError(t, writePOT(&b, refs, "v1.2.0", time.Date(2025, time.January, 2, 3, 4, 0, 0, time.UTC)))

	out := b.String()

	assert.Contains(t, out, `"Project-Id-Version: TestPro v1.2.0\n"`)
	assert.Contains(t, out, `"POT-Creation-Date: 2025-01-02 03:04+0000\n"`)
	assert.Contains(t, out, "#: assets/views/landing.go:12 assets/views/landing.go:40\nmsgid \"Why Choose TestPro?\"\nmsgstr \"\"\n")
	assert.Contains(t, out, "msgctxt \"nav\"\nmsgid \"Home\"\n")
	assert.Contains(t, out, "msgid_plural \"{{.N}} tests\"\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n")

	// Entries without context sort before those with one, then by msgid.
	assert.Less(t, strings.Index(out, `msgid "Docs"`), strings.Index(out, `msgid "Why Choose TestPro?"`))
	assert.Less(t, strings.Index(out, `msgid "Why Choose TestPro?"`), strings.Index(out, `msgid "Home"`))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestExtractRefs(t *testing.T) {
	if testing.Short() {
		t.Skip("loads and type-checks packages")
	}

	root, err := filepath.Abs("../..")
	require.NoError(t, err)

	pkgs, err := loadPackages(root, "./assets/views", "./server/routes", "./i18n")
	require.NoError(t, err)

	i18nPkgs := findI18nPkgPaths(pkgs)
	require.Contains(t, i18nPkgs, "codeberg.org/testpro/testpro/i18n")

	refs := extractRefs(pkgs, root, i18nPkgs)

	for _, id := range []string{
		"Why Choose TestPro?",
		"Welcome, {{.Name}}!",
		"Go to Dashboard",
		"Back to TestPro",
		"Page not found",
		"Start Testing Now",
	} {
		rs, ok := refs[key{id: id}]
		if assert.True(t, ok, id) {
			assert.True(t, strings.HasPrefix(rs[0].file, "assets/views/") || strings.HasPrefix(rs[0].file, "server/routes/"), rs[0].file)
		}
	}
}
