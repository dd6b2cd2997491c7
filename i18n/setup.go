// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/testpro/testpro/server/assets"
)

const (
	// poDomain is the gettext domain loaded for each locale.
	poDomain = "testpro"

	// poDir is the directory holding the catalogues inside the asset filesystem.
	poDir = "po"
)

var (
	// catalogues maps canonical BCP 47 tags to their loaded catalogue.
	catalogues map[string]*catalogue

	// supportedTags lists the base tag first, then every loaded tag sorted by string.
	supportedTags []language.Tag

	matcher language.Matcher
)

// Setup loads the gettext catalogues from the embedded assets.
func Setup() error {
	return SetupFS(assets.FS)
}

// SetupFS loads every po/<locale>.po file in fsys and builds the language
// matcher. File names may use hyphens or underscores ("pt-BR.po", "pt_BR.po").
// The template po/testpro.pot is skipped.
//
// Calling SetupFS again replaces the previously loaded state.
func SetupFS(fsys fs.FS) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	if fsys == nil {
		return ErrNoAssets
	}

	entries, err := fs.ReadDir(fsys, poDir)
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	loaded := make(map[string]*catalogue)

	var tags []language.Tag

	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".po") {
			continue
		}

		localeName := strings.TrimSuffix(fileName, ".po")

		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join(poDir, fileName))

		loaded[canonical] = newCatalogue(po.GetDomain())
		tags = append(tags, t)

		Logger.Info().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	all := make([]language.Tag, 0, len(tags)+1)
	all = append(all, baseTag)

	for _, t := range tags {
		if t != baseTag {
			all = append(all, t)
		}
	}

	catalogues = loaded
	supportedTags = all
	matcher = language.NewMatcher(all)

	return nil
}
