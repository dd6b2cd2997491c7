// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Kit builds primitives. The zero value renders without instrumentation.
type Kit struct {
	Instrument bool
}

// Variant selects the look of a button.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantOutline Variant = "outline"
	VariantGhost   Variant = "ghost"
)

const (
	buttonBase = "inline-flex items-center justify-center gap-2 whitespace-nowrap rounded-md text-sm font-medium " +
		"transition-colors focus-visible:outline-none focus-visible:ring-2 disabled:pointer-events-none disabled:opacity-50"
	cardBase        = "rounded-lg border shadow-sm"
	cardContentBase = "p-6 pt-0"
	badgeBase       = "inline-flex items-center rounded-full border px-2.5 py-0.5 text-xs font-semibold transition-colors"
)

var variantClasses = map[Variant]string{
	VariantDefault: "bg-primary text-primary-foreground hover:bg-primary/90 h-10 px-4 py-2",
	VariantOutline: "border border-input bg-background hover:bg-accent h-10 px-4 py-2",
	VariantGhost:   "hover:bg-accent h-10 px-4 py-2",
}

// cx joins non-empty class lists.
func cx(classes ...string) string {
	parts := make([]string, 0, len(classes))

	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}

	return strings.Join(parts, " ")
}

func (k Kit) el(tag func(...g.Node) g.Node, class string, dev Dev, children []g.Node) g.Node {
	devAttrs := dev.attrs(k.Instrument)
	nodes := make([]g.Node, 0, len(children)+len(devAttrs)+1)

	if class != "" {
		nodes = append(nodes, h.Class(class))
	}

	nodes = append(nodes, devAttrs...)
	nodes = append(nodes, children...)

	return tag(nodes...)
}

// Container is a region wrapper with no styling of its own.
func (k Kit) Container(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Div, cx(class), dev, children)
}

func (k Kit) Header(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Header, cx(class), dev, children)
}

func (k Kit) Nav(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Nav, cx(class), dev, children)
}

func (k Kit) Section(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Section, cx(class), dev, children)
}

func (k Kit) H1(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.H1, cx(class), dev, children)
}

func (k Kit) H2(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.H2, cx(class), dev, children)
}

func (k Kit) H3(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.H3, cx(class), dev, children)
}

func (k Kit) P(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.P, cx(class), dev, children)
}

func (k Kit) Span(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Span, cx(class), dev, children)
}

func (k Kit) Div(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Div, cx(class), dev, children)
}

func (k Kit) Footer(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Footer, cx(class), dev, children)
}

// Button renders a <button type="button">.
func (k Kit) Button(variant Variant, class string, dev Dev, children ...g.Node) g.Node {
	children = append([]g.Node{h.Type("button")}, children...)

	return k.el(h.Button, cx(buttonBase, variantClass(variant), class), dev, children)
}

// LinkButton renders an anchor styled as a button.
func (k Kit) LinkButton(href string, variant Variant, class string, dev Dev, children ...g.Node) g.Node {
	children = append([]g.Node{h.Href(href)}, children...)

	return k.el(h.A, cx(buttonBase, variantClass(variant), class), dev, children)
}

func (k Kit) Card(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Div, cx(cardBase, class), dev, children)
}

func (k Kit) CardContent(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Div, cx(cardContentBase, class), dev, children)
}

func (k Kit) Badge(class string, dev Dev, children ...g.Node) g.Node {
	return k.el(h.Div, cx(badgeBase, class), dev, children)
}

func variantClass(v Variant) string {
	if c, ok := variantClasses[v]; ok {
		return c
	}

	return variantClasses[VariantDefault]
}
