// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/testpro/testpro/config"
)

// ErrNoAssets is returned by SetupFS when no filesystem is available.
var ErrNoAssets = errors.New("i18n: no asset filesystem")

var (
	// Logger is the logger used by package i18n.
	Logger = log.Logger

	// reported holds the locale and entry of every missing translation
	// already logged.
	reported sync.Map
)

type missingEntry struct {
	locale string
	entry  string
}

func strictMissingKeys() bool {
	return config.Global.Internationalization.StrictMissingKeys
}

// reportMissing logs a missing translation once per locale and entry.
func reportMissing(tag language.Tag, m message) {
	base, script, region := tag.Raw()
	bare, _ := language.Compose(base, script, region)

	entry := m.id
	if m.ctx != "" {
		entry = m.ctx + gotext.EotSeparator + m.id
	}

	if _, seen := reported.LoadOrStore(missingEntry{bare.String(), entry}, struct{}{}); seen {
		return
	}

	Logger.Warn().
		Str("locale", bare.String()).
		Str("key", entry).
		Msg("Missing i18n translation")
}
