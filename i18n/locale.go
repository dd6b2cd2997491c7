// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"golang.org/x/text/language"
)

// BaseLocale is the locale of the msgids themselves.
const BaseLocale = "en"

var baseTag = language.Make(BaseLocale)

// Languages returns the supported language tags, base locale first.
//
// Before Setup only the base locale is reported.
func Languages() []language.Tag {
	if matcher == nil {
		return []language.Tag{baseTag}
	}

	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)

	return out
}
