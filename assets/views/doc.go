// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package views assembles full HTML pages.

Pages are built from gomponents nodes and exposed as templ.Component values,
so handlers render them with Render(ctx, w) and the locale in ctx selects the
translations.
*/
package views
