// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
	g "maragu.dev/gomponents"
)

// IconsDir is where the SVG icons live inside the asset filesystem.
const IconsDir = "assets/icons"

// iconCache holds all of our SVGs keyed by filename (without the ".svg" suffix).
var iconCache = make(map[string]string)

// LoadIcons reads every .svg file in dir into the icon cache, replacing its
// previous contents.
func LoadIcons(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading icons directory %q: %w", dir, err)
	}

	cache := make(map[string]string, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".svg") {
			continue
		}

		// Embedded filesystems use forward slashes on every OS.
		fullPath := path.Join(dir, name)

		content, err := fs.ReadFile(fsys, fullPath)
		if err != nil {
			return fmt.Errorf("reading icon %q: %w", fullPath, err)
		}

		svg := strings.TrimSpace(string(content))
		if !strings.HasPrefix(svg, "<svg") {
			return fmt.Errorf("icon %q: %w", fullPath, errNotSVG)
		}

		cache[strings.TrimSuffix(name, ".svg")] = svg
	}

	iconCache = cache

	return nil
}

var errNotSVG = errors.New("file does not start with <svg")

// HasIcon reports whether name was loaded.
func HasIcon(name string) bool {
	_, ok := iconCache[name]

	return ok
}

// Icon inlines the named SVG with class and dev attributes added to its root
// element. Unknown icons render nothing.
func (k Kit) Icon(name, class string, dev Dev) g.Node {
	svg, ok := iconCache[name]
	if !ok {
		log.Debug().Str("icon", name).Msg("Icon not loaded")

		return nil
	}

	var attrs strings.Builder

	attrs.WriteString(`<svg aria-hidden="true"`)

	if class != "" {
		attrs.WriteString(` class="` + templ.EscapeString(class) + `"`)
	}

	if k.Instrument && !dev.inert() {
		attrs.WriteString(` data-dev-id="` + templ.EscapeString(string(dev.ID)) + `"`)

		if dev.Name != "" {
			attrs.WriteString(` data-dev-name="` + templ.EscapeString(dev.Name) + `"`)
		}

		if dev.Description != "" {
			attrs.WriteString(` data-dev-description="` + templ.EscapeString(dev.Description) + `"`)
		}
	}

	return g.Raw(attrs.String() + strings.TrimPrefix(svg, "<svg"))
}
