// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// templates holds parsed placeholder templates keyed by their source text.
var templates sync.Map

// Tr translates msgid, the English source text, for the locale in ctx.
// Trailing arguments are name, value pairs for {{.Name}} placeholders.
//
// An untranslated msgid is returned as is, or wrapped in ⟦⟧ when strict
// missing keys are enabled.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return message{id: msgid}.translate(ctx, kv)
}

// TrC translates msgid within a disambiguating context, like pgettext.
func TrC(ctx context.Context, msgctxt, msgid string, kv ...any) string {
	return message{ctx: msgctxt, id: msgid}.translate(ctx, kv)
}

// TrN picks the singular or plural form for n, like ngettext.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return message{id: singular, plural: plural, n: n, counted: true}.translate(ctx, kv)
}

// TrNC is TrN within a disambiguating context, like npgettext.
func TrNC(ctx context.Context, msgctxt, singular, plural string, n int, kv ...any) string {
	return message{ctx: msgctxt, id: singular, plural: plural, n: n, counted: true}.translate(ctx, kv)
}

type message struct {
	ctx     string
	id      string
	plural  string
	n       int
	counted bool
}

// source is the English text used when no translation exists.
func (m message) source() string {
	if m.counted && m.n != 1 {
		return m.plural
	}

	return m.id
}

func (m message) translate(ctx context.Context, kv []any) string {
	cat, tag := resolveLocale(TagFrom(ctx))

	text, ok := cat.lookup(m)
	if !ok {
		text = m.source()

		if strictMissingKeys() {
			reportMissing(tag, m)

			text = markMissing(text)
		}
	}

	return format(tag, text, pairs(kv))
}

func markMissing(s string) string {
	return "⟦" + s + "⟧"
}

// format expands {{.Name}} placeholders in s.
// On failure s is returned unexpanded.
func format(tag language.Tag, s string, data map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	tmpl, err := parseCached(s)
	if err == nil {
		var b strings.Builder
		if err = tmpl.Execute(&b, data); err == nil {
			return b.String()
		}
	}

	if strictMissingKeys() {
		return markMissing(s)
	}

	Logger.Warn().Err(err).Stringer("locale", tag).Str("text", s).Msg("Failed to format translation")

	return s
}

func parseCached(s string) (*template.Template, error) {
	if t, ok := templates.Load(s); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("msg").Option("missingkey=error").Parse(s)
	if err != nil {
		return nil, err
	}

	templates.Store(s, t)

	return t, nil
}

// resolveLocale returns the loaded catalogue best matching t, and its tag.
// Before Setup it returns nil and the base tag.
func resolveLocale(t language.Tag) (*catalogue, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	matched := bestSupported(t.String())

	return catalogues[matched.String()], matched
}

// bestSupported matches preferences against the loaded tags. The result is
// one of supportedTags, without the -u-rg extension language.MatchStrings adds.
func bestSupported(preferred ...string) language.Tag {
	_, index := language.MatchStrings(matcher, preferred...)
	if index < 0 || index >= len(supportedTags) {
		return baseTag
	}

	return supportedTags[index]
}

// pairs turns alternating name, value arguments into template data.
// It panics on an odd count or a non-string name.
func pairs(kv []any) map[string]any {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want name, value pairs")
	}

	data := make(map[string]any, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic("i18n: placeholder name must be a string")
		}

		data[name] = kv[i+1]
	}

	return data
}
