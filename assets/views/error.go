// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"codeberg.org/testpro/testpro/i18n"
)

// ErrorData describes an error page. Title and Message are shown as given;
// an empty Title falls back to the status text.
type ErrorData struct {
	StatusCode int
	Title      string
	Message    string
}

// Error renders a themed error page.
func Error(data ErrorData) templ.Component {
	return component(func(ctx context.Context) g.Node {
		title := data.Title
		if title == "" {
			title = http.StatusText(data.StatusCode)
		}

		if title == "" {
			title = i18n.Tr(ctx, "Error")
		}

		return layout(ctx, title+" - TestPro", "antialiased",
			h.Main(
				h.Class("min-h-screen bg-gradient-to-br from-slate-900 via-blue-900 to-slate-900 flex items-center justify-center px-4"),
				h.Div(
					h.Class("bg-white/5 backdrop-blur-sm rounded-xl p-12 text-center border border-white/10 max-w-xl"),
					g.If(data.StatusCode > 0,
						h.P(h.Class("text-6xl font-bold text-white mb-4"), g.Text(strconv.Itoa(data.StatusCode))),
					),
					h.H1(h.Class("text-2xl font-semibold text-white mb-4"), g.Text(title)),
					g.If(data.Message != "",
						h.P(h.Class("text-gray-300 mb-8"), g.Text(data.Message)),
					),
					h.A(
						h.Href("/"),
						h.Class("bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded-lg transition-colors"),
						tr(ctx, "Back to TestPro"),
					),
				),
			),
		)
	})
}
