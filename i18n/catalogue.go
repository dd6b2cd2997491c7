// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/leonelquinteros/gotext/plurals"
)

// catalogue is the parsed content of one po file.
type catalogue struct {
	entries  map[string]*gotext.Translation
	contexts map[string]map[string]*gotext.Translation
	rule     plurals.Expression
}

func newCatalogue(domain *gotext.Domain) *catalogue {
	c := &catalogue{
		entries:  domain.GetTranslations(),
		contexts: domain.GetCtxTranslations(),
	}

	if expr := pluralExpression(domain.PluralForms); expr != "" {
		if rule, err := plurals.Compile(expr); err == nil {
			c.rule = rule
		} else {
			Logger.Warn().Err(err).Str("plural_forms", domain.PluralForms).Msg("Invalid Plural-Forms header")
		}
	}

	return c
}

// pluralExpression extracts the plural= part of a Plural-Forms header.
func pluralExpression(header string) string {
	for _, field := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(field, "=")
		if ok && strings.TrimSpace(name) == "plural" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

// pluralIndex is the msgstr[i] slot used for count n.
// Without a Plural-Forms rule the English n != 1 rule applies.
func (c *catalogue) pluralIndex(n int) int {
	if n < 0 {
		n = -n
	}

	if c.rule == nil {
		if n == 1 {
			return 0
		}

		return 1
	}

	return c.rule.Eval(uint32(n)) // #nosec:G115
}

// find returns the entry for msgid under msgctxt, or nil.
func (c *catalogue) find(msgctxt, msgid string) *gotext.Translation {
	if c == nil {
		return nil
	}

	if msgctxt != "" {
		return c.contexts[msgctxt][msgid]
	}

	return c.entries[msgid]
}

// lookup returns the translation of m, if the catalogue has one.
func (c *catalogue) lookup(m message) (string, bool) {
	tr := c.find(m.ctx, m.id)
	if tr == nil {
		return "", false
	}

	if !m.counted {
		if !tr.IsTranslated() {
			return "", false
		}

		return tr.Get(), true
	}

	index := c.pluralIndex(m.n)
	if !tr.IsTranslatedN(index) {
		return "", false
	}

	return tr.GetN(index), true
}
