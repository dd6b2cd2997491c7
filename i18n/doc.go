// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates user-facing strings through GNU gettext .po
catalogues, keyed by the original English text (msgid).

# Quick start

	i18n.Tr(ctx, "Why Choose TestPro?")
	i18n.Tr(ctx, "Welcome, {{.Name}}!", "Name", firstName)
	i18n.TrN(ctx, "{{.Count}} check", "{{.Count}} checks", n, "Count", n)

Static strings that live in data tables are declared as [MsgKey] values so
that cmd/i18n_extract can find them. A MsgKey is also a templ.Component and
renders its own translation.

# Catalogues

Setup loads po/<locale>.po from the embedded assets under the "testpro"
domain. Without Setup every lookup returns the msgid, so pages render in
English.

# Missing translations

With internationalization.strictMissingKeys enabled, a missing lookup is
logged once per locale and msgid and rendered wrapped as "⟦...⟧".
*/
package i18n
