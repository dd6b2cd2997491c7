// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package landing

import (
	"slices"

	"codeberg.org/testpro/testpro/i18n"
)

// Icon names an SVG under assets/icons and the classes it is drawn with.
type Icon struct {
	Name  string
	Class string
}

// Feature is a selling point shown in the "Why Choose TestPro?" grid.
type Feature struct {
	Icon        Icon
	Title       i18n.MsgKey
	Description i18n.MsgKey
}

// Service is a testing service card with its bullet list.
type Service struct {
	Icon        Icon
	Title       i18n.MsgKey
	Description i18n.MsgKey
	Features    []i18n.MsgKey
}

// Stat is a headline figure. Values are display strings, not numbers.
type Stat struct {
	Label i18n.MsgKey
	Value string
}

// TestType is a tile in the testing capabilities grid.
type TestType struct {
	Name  i18n.MsgKey
	Color string
}

// Initial returns the first character of the untranslated name, shown on the tile.
func (t TestType) Initial() string {
	for _, r := range string(t.Name) {
		return string(r)
	}

	return ""
}

var features = [...]Feature{
	{
		Icon:        Icon{Name: "test-tube", Class: "w-8 h-8 text-blue-500"},
		Title:       "Comprehensive Testing",
		Description: "Full-stack website testing including functionality, performance, and security assessments",
	},
	{
		Icon:        Icon{Name: "bug", Class: "w-8 h-8 text-red-500"},
		Title:       "Bug Detection",
		Description: "Advanced bug detection and reporting with detailed analysis and reproduction steps",
	},
	{
		Icon:        Icon{Name: "bar-chart-3", Class: "w-8 h-8 text-green-500"},
		Title:       "Performance Analysis",
		Description: "In-depth performance testing with load testing, speed optimization, and bottleneck identification",
	},
	{
		Icon:        Icon{Name: "shield", Class: "w-8 h-8 text-purple-500"},
		Title:       "Security Testing",
		Description: "Comprehensive security audits to identify vulnerabilities and ensure data protection",
	},
}

var services = [...]Service{
	{
		Icon:        Icon{Name: "target", Class: "w-12 h-12 text-orange-500"},
		Title:       "Functional Testing",
		Description: "Verify that all website features work as intended across different browsers and devices",
		Features:    []i18n.MsgKey{"Cross-browser testing", "Mobile responsiveness", "Form validation", "Navigation testing"},
	},
	{
		Icon:        Icon{Name: "zap", Class: "w-12 h-12 text-yellow-500"},
		Title:       "Performance Testing",
		Description: "Ensure your website loads quickly and handles traffic efficiently",
		Features:    []i18n.MsgKey{"Load testing", "Speed optimization", "Resource analysis", "CDN evaluation"},
	},
	{
		Icon:        Icon{Name: "shield", Class: "w-12 h-12 text-green-500"},
		Title:       "Security Testing",
		Description: "Protect your website and users with comprehensive security assessments",
		Features:    []i18n.MsgKey{"Vulnerability scanning", "SQL injection testing", "XSS protection", "Data encryption"},
	},
	{
		Icon:        Icon{Name: "check-circle", Class: "w-12 h-12 text-blue-500"},
		Title:       "Usability Testing",
		Description: "Optimize user experience with detailed usability and accessibility testing",
		Features:    []i18n.MsgKey{"User journey analysis", "Accessibility compliance", "UI/UX evaluation", "A/B testing"},
	},
}

var stats = [...]Stat{
	{Label: "Tests Completed", Value: "10K+"},
	{Label: "Bugs Found", Value: "25K+"},
	{Label: "Websites Tested", Value: "500+"},
	{Label: "Client Satisfaction", Value: "99%"},
}

var testTypes = [...]TestType{
	{Name: "Functional", Color: "from-blue-400 to-blue-500"},
	{Name: "Performance", Color: "from-yellow-400 to-orange-500"},
	{Name: "Security", Color: "from-red-400 to-red-500"},
	{Name: "Usability", Color: "from-green-400 to-green-500"},
	{Name: "Mobile", Color: "from-purple-400 to-purple-500"},
	{Name: "API", Color: "from-teal-400 to-teal-500"},
}

// Features returns the feature cards in display order.
func Features() []Feature {
	return slices.Clone(features[:])
}

// Services returns the service cards in display order.
func Services() []Service {
	out := make([]Service, len(services))
	for i, s := range services {
		s.Features = slices.Clone(s.Features)
		out[i] = s
	}

	return out
}

// Stats returns the headline figures in display order.
func Stats() []Stat {
	return slices.Clone(stats[:])
}

// TestTypes returns the testing capability tiles in display order.
func TestTypes() []TestType {
	return slices.Clone(testTypes[:])
}
