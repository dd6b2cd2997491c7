// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MsgKey is a source message id, the original English text of a UI string.
//
// Declaring table strings as MsgKey lets cmd/i18n_extract collect them.
type MsgKey string

// Tr translates the msgid for the locale in ctx. A nil ctx uses the base locale.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// String returns the untranslated msgid.
func (s MsgKey) String() string {
	return string(s)
}

// Render writes the HTML-escaped translation, making MsgKey a templ.Component.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(s.Tr(ctx)))

	return err
}
