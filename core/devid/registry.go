// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package devid

import "strconv"

// Entry describes one registered identifier.
type Entry struct {
	ID          ID     `json:"id"                    yaml:"id"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Container identifiers wrap whole page regions.
const (
	LandingPageRoot     ID = "landing-page-root"
	HeroSection         ID = "hero-section"
	StatsSection        ID = "stats-section"
	FeaturesSection     ID = "features-section"
	ServicesSection     ID = "services-section"
	TestingTypesSection ID = "testing-types-section"
	CTASection          ID = "cta-section"
)

// Element identifiers.
const (
	MainWrapper         ID = "main-wrapper"
	MainHeader          ID = "main-header"
	MainNav             ID = "main-nav"
	LogoSection         ID = "logo-section"
	BrandName           ID = "brand-name"
	NavActions          ID = "nav-actions"
	DocsButton          ID = "docs-button"
	UserSection         ID = "user-section"
	WelcomeMessage      ID = "welcome-message"
	NavDashboardButton  ID = "nav-dashboard-button"
	AuthButtons         ID = "auth-buttons"
	NavLoginButton      ID = "nav-login-button"
	NavRegisterButton   ID = "nav-register-button"
	HeroContent         ID = "hero-content"
	HeroContentWrapper  ID = "hero-content-wrapper"
	HeroTitle           ID = "hero-title"
	TestingHighlight    ID = "testing-highlight"
	HeroDescription     ID = "hero-description"
	HeroCTAButtons      ID = "hero-cta-buttons"
	HeroStartTesting    ID = "hero-start-testing"
	HeroLearnMoreButton ID = "hero-learn-more-button"
	StatsContent        ID = "stats-content"
	StatsGrid           ID = "stats-grid"
	CTAStartTesting     ID = "cta-start-testing"
	CTAContactUs        ID = "cta-contact-us"
	MainFooter          ID = "main-footer"
)

var static = []Entry{
	{LandingPageRoot, "Landing Page Root", "Root container of the landing page"},
	{MainWrapper, "Main Wrapper", "Main page wrapper with gradient background"},
	{MainHeader, "Main Header", "Primary site header with navigation"},
	{MainNav, "Main Navigation", "Primary navigation bar"},
	{LogoSection, "Logo Section", "Company logo and brand name"},
	{BrandName, "Brand Name", "TestPro website testing platform brand name"},
	{NavActions, "Navigation Actions", "Navigation buttons and user menu"},
	{DocsButton, "Docs Button", "Link to testing documentation"},
	{UserSection, "User Section", "Authenticated user welcome area"},
	{WelcomeMessage, "Welcome Message", "Welcome message for authenticated user"},
	{NavDashboardButton, "Navigation Dashboard Button", "Dashboard button in navigation header for authenticated users"},
	{AuthButtons, "Authentication Buttons", "Login and register buttons for unauthenticated users"},
	{NavLoginButton, "Navigation Login Button", "Login button in navigation header"},
	{NavRegisterButton, "Navigation Register Button", "Get started button in navigation header"},
	{HeroSection, "Hero Section", "Container for the hero region"},
	{HeroContent, "Hero Content", "Main hero section with title and call-to-action"},
	{HeroContentWrapper, "Hero Content Wrapper", "Animated wrapper for hero content"},
	{HeroTitle, "Hero Title", "Main hero title showcasing website testing services"},
	{TestingHighlight, "Testing Highlight", "Highlighted website testing text in gradient"},
	{HeroDescription, "Hero Description", "Hero section description explaining testing services"},
	{HeroCTAButtons, "Hero CTA Buttons", "Call-to-action buttons in hero section"},
	{HeroStartTesting, "Start Testing Button", "Primary call-to-action button for starting website testing"},
	{HeroLearnMoreButton, "Learn More Button", "Secondary button to learn more about testing services"},
	{StatsSection, "Stats Section", "Container for the statistics region"},
	{StatsContent, "Stats Content", "Statistics section showing testing metrics"},
	{StatsGrid, "Stats Grid", "Grid container for statistics cards"},
	{FeaturesSection, "Features Section", "Container for the feature cards"},
	{ServicesSection, "Services Section", "Container for the service cards"},
	{TestingTypesSection, "Testing Types Section", "Container for the testing capability grid"},
	{CTASection, "CTA Section", "Container for the closing call-to-action"},
	{CTAStartTesting, "Start Testing Button", "Primary CTA button to start website testing"},
	{CTAContactUs, "Contact Us Button", "Secondary CTA button to contact for custom testing"},
	{MainFooter, "Main Footer", "Site footer with links and copyright"},
}

var familyNames = map[Family]string{
	StatCard:    "Stat Card",
	FeatureCard: "Feature Card",
	ServiceCard: "Service Card",
	TestType:    "Testing Type Tile",
	TestBadge:   "Testing Badge",
}

// Registry returns every registered identifier: the static entries followed
// by each family in order. The returned slice is a fresh copy.
func Registry() []Entry {
	entries := make([]Entry, 0, len(static)+24)
	entries = append(entries, static...)

	for _, family := range Families() {
		for i, id := range families[family] {
			entries = append(entries, Entry{
				ID:          id,
				Name:        familyNames[family] + " " + strconv.Itoa(i+1),
				Description: familyNames[family] + " at position " + strconv.Itoa(i),
			})
		}
	}

	return entries
}

// Lookup returns the registry entry for id.
func Lookup(id ID) (Entry, bool) {
	for _, e := range Registry() {
		if e.ID == id {
			return e, true
		}
	}

	return Entry{}, false
}
