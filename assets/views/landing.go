// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"codeberg.org/testpro/testpro/assets/components/ui"
	"codeberg.org/testpro/testpro/core/auth"
	"codeberg.org/testpro/testpro/core/devid"
	"codeberg.org/testpro/testpro/core/landing"
	"codeberg.org/testpro/testpro/i18n"
)

// Links are the navigation destinations of the landing page.
type Links struct {
	Dashboard     string
	Login         string
	Register      string
	Contact       string
	Documentation string
	API           string
	Support       string
}

// LandingData is everything the landing page depends on.
type LandingData struct {
	Phase      landing.Phase
	Auth       auth.View
	Links      Links
	Instrument bool
}

// FeaturesAnchor is the fragment "Learn More" scrolls to.
const FeaturesAnchor = "features"

const (
	primaryCTAClass = "bg-gradient-to-r from-blue-600 to-green-600 hover:from-blue-700 hover:to-green-700 " +
		"text-white px-8 py-3 rounded-lg font-semibold transition-all transform hover:scale-105"
	secondaryCTAClass = "border border-blue-500 text-blue-400 hover:bg-blue-500 hover:text-white " +
		"px-8 py-3 rounded-lg font-semibold transition-all"
	navGhostClass   = "text-gray-300 hover:text-white transition-colors"
	navPrimaryClass = "bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded-lg transition-colors"
	sectionClass    = "container mx-auto px-4 py-20"
	glassCardClass  = "bg-white/5 backdrop-blur-sm rounded-xl border border-white/10"
	footerLinkClass = "text-gray-400 hover:text-white transition-colors"
)

// Landing renders the TestPro landing page.
func Landing(data LandingData) templ.Component {
	return component(func(ctx context.Context) g.Node {
		p := page{ctx: ctx, data: data, ui: ui.Kit{Instrument: data.Instrument}}

		return layout(ctx, i18n.Tr(ctx, "TestPro - Professional Website Testing"), "antialiased", p.root())
	})
}

// page carries the render inputs through the section builders.
type page struct {
	ctx  context.Context
	data LandingData
	ui   ui.Kit
}

func (p page) tr(key i18n.MsgKey) g.Node {
	return tr(p.ctx, key)
}

// dashboardOrRegister is the destination of the primary calls to action.
func (p page) dashboardOrRegister() string {
	if p.data.Auth.IsAuthenticated {
		return p.data.Links.Dashboard
	}

	return p.data.Links.Register
}

func (p page) root() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.LandingPageRoot),
		k.Div("min-h-screen bg-gradient-to-br from-slate-900 via-blue-900 to-slate-900", ui.Registered(devid.MainWrapper),
			p.header(),
			p.hero(),
			p.stats(),
			p.features(),
			p.services(),
			p.testingTypes(),
			p.cta(),
			p.footer(),
		),
	)
}

func (p page) header() g.Node {
	k := p.ui

	return k.Header("container mx-auto px-4 py-6", ui.Registered(devid.MainHeader),
		k.Nav("flex items-center justify-between", ui.Registered(devid.MainNav),
			k.Div("flex items-center space-x-2", ui.Registered(devid.LogoSection),
				k.Div("w-8 h-8 bg-gradient-to-r from-blue-500 to-green-500 rounded-lg flex items-center justify-center", ui.NoDev,
					k.Icon("test-tube", "w-5 h-5 text-white", ui.NoDev),
				),
				k.Span("text-xl font-bold text-white", ui.Registered(devid.BrandName), g.Text("TestPro")),
			),
			k.Div("flex items-center space-x-4", ui.Registered(devid.NavActions),
				k.LinkButton(p.data.Links.Documentation, ui.VariantGhost, navGhostClass, ui.Registered(devid.DocsButton),
					p.tr("Documentation"),
				),
				g.Iff(p.data.Auth.IsAuthenticated, p.userSection),
				g.Iff(!p.data.Auth.IsAuthenticated, p.authButtons),
			),
		),
	)
}

func (p page) userSection() g.Node {
	k := p.ui

	return k.Div("flex items-center space-x-4", ui.Registered(devid.UserSection),
		k.Span("text-gray-300", ui.Registered(devid.WelcomeMessage),
			g.Text(i18n.Tr(p.ctx, "Welcome, {{.Name}}!", "Name", p.data.Auth.FirstName())),
		),
		k.LinkButton(p.data.Links.Dashboard, ui.VariantDefault, navPrimaryClass, ui.Registered(devid.NavDashboardButton),
			k.Icon("user", "w-4 h-4 mr-2", ui.NoDev),
			p.tr("Dashboard"),
		),
	)
}

func (p page) authButtons() g.Node {
	k := p.ui

	return k.Div("flex items-center space-x-2", ui.Registered(devid.AuthButtons),
		k.LinkButton(p.data.Links.Login, ui.VariantGhost, navGhostClass, ui.Registered(devid.NavLoginButton),
			p.tr("Login"),
		),
		k.LinkButton(p.data.Links.Register, ui.VariantDefault, navPrimaryClass, ui.Registered(devid.NavRegisterButton),
			p.tr("Start Testing"),
		),
	)
}

func (p page) hero() g.Node {
	k := p.ui

	primary := i18n.MsgKey("Start Testing Now")
	if p.data.Auth.IsAuthenticated {
		primary = i18n.MsgKey("Go to Dashboard")
	}

	return k.Container("", ui.Registered(devid.HeroSection),
		k.Section("container mx-auto px-4 py-20 text-center", ui.Registered(devid.HeroContent),
			k.Div(landing.HeroClass(p.data.Phase), ui.Registered(devid.HeroContentWrapper),
				h.Data("mount-from", landing.HeroPhaseClass(landing.Unmounted)),
				h.Data("mount-to", landing.HeroPhaseClass(landing.Mounted)),
				k.H1("text-5xl md:text-7xl font-bold text-white mb-6", ui.Registered(devid.HeroTitle),
					p.tr("Professional"),
					g.Text(" "),
					k.Span("bg-gradient-to-r from-blue-400 to-green-400 bg-clip-text text-transparent", ui.Registered(devid.TestingHighlight),
						p.tr("Website Testing"),
					),
				),
				k.P("text-xl text-gray-300 mb-8 max-w-2xl mx-auto", ui.Registered(devid.HeroDescription),
					p.tr("Comprehensive website testing platform for functionality, performance, security, and usability. "+
						"Ensure your website delivers exceptional user experiences across all devices and browsers."),
				),
				k.Div("flex flex-col sm:flex-row gap-4 justify-center", ui.Registered(devid.HeroCTAButtons),
					k.LinkButton(p.dashboardOrRegister(), ui.VariantDefault, primaryCTAClass, ui.Registered(devid.HeroStartTesting),
						p.tr(primary),
					),
					k.LinkButton("#"+FeaturesAnchor, ui.VariantOutline, secondaryCTAClass, ui.Registered(devid.HeroLearnMoreButton),
						p.tr("Learn More"),
					),
				),
			),
		),
	)
}

func (p page) stats() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.StatsSection),
		k.Section("container mx-auto px-4 py-12", ui.Registered(devid.StatsContent),
			k.Div("grid grid-cols-2 md:grid-cols-4 gap-6", ui.Registered(devid.StatsGrid),
				g.Map(indexed(landing.Stats()), func(s item[landing.Stat]) g.Node {
					dev := ui.Dev{
						ID:          devid.Resolve(devid.StatCard, s.index),
						Name:        s.v.Label.String() + " Stat Card",
						Description: "Statistical card showing " + s.v.Label.String() + ": " + s.v.Value,
					}

					return k.Card(glassCardClass+" p-6 text-center", dev,
						k.CardContent("p-0", ui.NoDev,
							k.Div("text-2xl font-bold text-white mb-2", ui.NoDev, g.Text(s.v.Value)),
							k.Div("text-gray-400", ui.NoDev, p.tr(s.v.Label)),
						),
					)
				}),
			),
		),
	)
}

// sectionHeading is the centred title and subtitle above each card grid.
func (p page) sectionHeading(title, subtitle i18n.MsgKey) g.Node {
	k := p.ui

	return k.Div("text-center mb-16", ui.NoDev,
		k.H2("text-4xl font-bold text-white mb-4", ui.NoDev, p.tr(title)),
		k.P("text-gray-300 max-w-2xl mx-auto", ui.NoDev, p.tr(subtitle)),
	)
}

func (p page) features() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.FeaturesSection),
		k.Section(sectionClass, ui.NoDev,
			h.ID(FeaturesAnchor),
			p.sectionHeading("Why Choose TestPro?",
				"Comprehensive testing solutions to ensure your website performs flawlessly"),
			k.Div("grid md:grid-cols-2 lg:grid-cols-4 gap-6", ui.NoDev,
				g.Map(indexed(landing.Features()), func(f item[landing.Feature]) g.Node {
					dev := ui.Dev{
						ID:          devid.Resolve(devid.FeatureCard, f.index),
						Name:        f.v.Title.String() + " Feature Card",
						Description: "Feature card highlighting " + f.v.Title.String() + ": " + f.v.Description.String(),
					}

					return k.Card(glassCardClass+" p-6 hover:border-blue-500/50 transition-all", dev,
						k.CardContent("p-0", ui.NoDev,
							k.Div("mb-4", ui.NoDev, k.Icon(f.v.Icon.Name, f.v.Icon.Class, ui.NoDev)),
							k.H3("text-xl font-semibold text-white mb-2", ui.NoDev, p.tr(f.v.Title)),
							k.P("text-gray-400", ui.NoDev, p.tr(f.v.Description)),
						),
					)
				}),
			),
		),
	)
}

func (p page) services() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.ServicesSection),
		k.Section(sectionClass, ui.NoDev,
			p.sectionHeading("Our Testing Services",
				"Complete testing solutions for every aspect of your website"),
			k.Div("grid md:grid-cols-2 gap-8", ui.NoDev,
				g.Map(indexed(landing.Services()), func(s item[landing.Service]) g.Node {
					dev := ui.Dev{
						ID:          devid.Resolve(devid.ServiceCard, s.index),
						Name:        s.v.Title.String() + " Service Card",
						Description: "Service card for " + s.v.Title.String() + ": " + s.v.Description.String(),
					}

					return k.Card(glassCardClass+" p-8 hover:border-blue-500/50 transition-all", dev,
						k.CardContent("p-0", ui.NoDev,
							k.Div("flex items-center mb-6", ui.NoDev,
								k.Icon(s.v.Icon.Name, s.v.Icon.Class, ui.NoDev),
								k.H3("text-2xl font-semibold text-white ml-4", ui.NoDev, p.tr(s.v.Title)),
							),
							k.P("text-gray-400 mb-6", ui.NoDev, p.tr(s.v.Description)),
							k.Div("space-y-2", ui.NoDev,
								g.Map(s.v.Features, func(bullet i18n.MsgKey) g.Node {
									return k.Div("flex items-center", ui.NoDev,
										k.Icon("check-circle", "w-4 h-4 text-green-400 mr-2", ui.NoDev),
										k.Span("text-gray-300", ui.NoDev, p.tr(bullet)),
									)
								}),
							),
						),
					)
				}),
			),
		),
	)
}

func (p page) testingTypes() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.TestingTypesSection),
		k.Section(sectionClass, ui.NoDev,
			p.sectionHeading("Testing Capabilities",
				"Advanced testing methodologies and tools for comprehensive website analysis"),
			k.Div("grid grid-cols-2 md:grid-cols-6 gap-8", ui.NoDev,
				g.Map(indexed(landing.TestTypes()), func(t item[landing.TestType]) g.Node {
					badge := ui.Dev{
						ID:          devid.Resolve(devid.TestBadge, t.index),
						Name:        t.v.Name.String() + " Testing Badge",
						Description: "Testing type badge for " + t.v.Name.String(),
					}

					return k.Div("text-center", ui.NoDev,
						k.Div("w-16 h-16 mx-auto mb-3 rounded-xl bg-gradient-to-br "+t.v.Color+" flex items-center justify-center",
							ui.Dev{ID: devid.Resolve(devid.TestType, t.index)},
							k.Span("text-white font-bold text-lg", ui.NoDev, g.Text(t.v.Initial())),
						),
						k.Badge("text-gray-300 font-medium bg-transparent border-none", badge, p.tr(t.v.Name)),
					)
				}),
			),
		),
	)
}

func (p page) cta() g.Node {
	k := p.ui

	return k.Container("", ui.Registered(devid.CTASection),
		k.Section(sectionClass, ui.NoDev,
			k.Div("bg-gradient-to-r from-blue-600/20 to-green-600/20 rounded-2xl p-12 text-center border border-blue-500/30", ui.NoDev,
				k.H2("text-4xl font-bold text-white mb-4", ui.NoDev, p.tr("Ready to Test Your Website?")),
				k.P("text-gray-300 mb-8 max-w-2xl mx-auto", ui.NoDev,
					p.tr("Start comprehensive testing today and ensure your website delivers exceptional user experiences"),
				),
				k.Div("flex flex-col sm:flex-row gap-4 justify-center", ui.NoDev,
					k.LinkButton(p.dashboardOrRegister(), ui.VariantDefault, primaryCTAClass, ui.Registered(devid.CTAStartTesting),
						k.Span("flex items-center gap-2", ui.NoDev,
							k.Icon("test-tube", "w-5 h-5", ui.NoDev),
							p.tr("Start Testing"),
						),
					),
					k.LinkButton(p.data.Links.Contact, ui.VariantOutline, secondaryCTAClass, ui.Registered(devid.CTAContactUs),
						k.Span("flex items-center gap-2", ui.NoDev,
							k.Icon("users", "w-5 h-5", ui.NoDev),
							p.tr("Contact Us"),
						),
					),
				),
			),
		),
	)
}

func (p page) footer() g.Node {
	k := p.ui

	link := func(href string, label g.Node) g.Node {
		return h.A(h.Href(href), h.Class(footerLinkClass), label)
	}

	return k.Footer("container mx-auto px-4 py-8 border-t border-white/10", ui.Registered(devid.MainFooter),
		k.Div("flex flex-col md:flex-row justify-between items-center", ui.NoDev,
			k.Div("text-gray-400 mb-4 md:mb-0", ui.NoDev,
				p.tr("© 2024 TestPro. Professional website testing solutions."),
			),
			k.Div("flex space-x-6", ui.NoDev,
				link(p.data.Links.Documentation, p.tr("Documentation")),
				link(p.data.Links.API, g.Text(i18n.TrC(p.ctx, "footer", "API"))),
				link(p.data.Links.Support, p.tr("Support")),
			),
		),
	)
}

// item pairs a table row with its position.
type item[T any] struct {
	index int
	v     T
}

func indexed[T any](rows []T) []item[T] {
	out := make([]item[T], len(rows))
	for i, v := range rows {
		out[i] = item[T]{index: i, v: v}
	}

	return out
}
