// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"codeberg.org/testpro/testpro/i18n"
)

// noscriptCSS shows mount-animated content when scripts never run.
const noscriptCSS = `[data-mount-to]{opacity:1 !important;transform:none !important}`

// component adapts a node builder to templ.Component.
func component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// tr translates key for the locale in ctx and returns it as escaped text.
func tr(ctx context.Context, key i18n.MsgKey) g.Node {
	return g.Text(key.Tr(ctx))
}

func layout(ctx context.Context, title string, bodyClass string, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang(i18n.TagFrom(ctx).String()),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.Meta(h.Name("description"), h.Content(i18n.Tr(ctx, "Professional website testing solutions."))),
				h.TitleEl(g.Text(title)),
				h.Link(h.Rel("stylesheet"), h.Href("/css/landing.css")),
				h.Script(h.Src("/js/mount.js"), h.Defer()),
				h.NoScript(h.StyleEl(g.Raw(noscriptCSS))),
			),
			h.Body(
				h.Class(bodyClass),
				g.Group(body),
			),
		),
	)
}
