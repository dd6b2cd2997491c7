// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package devid holds the developer-instrumentation identifiers attached to
landing page elements.

Repeated elements (cards, badges) take their identifier from a family and a
position; everything else uses one of the static identifiers in the registry.
*/
package devid

import "strconv"

// ID is a developer-instrumentation identifier.
type ID string

// NoID marks an element that carries no registered identifier.
const NoID ID = "noID"

// Family names a group of identifiers for repeated elements.
type Family string

const (
	StatCard    Family = "stat-card"
	FeatureCard Family = "feature-card"
	ServiceCard Family = "service-card"
	TestType    Family = "test-type"
	TestBadge   Family = "test-badge"
)

var families = map[Family][]ID{
	StatCard:    sequence(StatCard, 4),
	FeatureCard: sequence(FeatureCard, 4),
	ServiceCard: sequence(ServiceCard, 4),
	TestType:    sequence(TestType, 6),
	TestBadge:   sequence(TestBadge, 6),
}

func sequence(family Family, n int) []ID {
	ids := make([]ID, n)
	for i := range ids {
		ids[i] = ID(string(family) + "-" + strconv.Itoa(i))
	}

	return ids
}

// Resolve returns the identifier at index within family.
//
// Unknown families and out-of-range indices yield NoID.
func Resolve(family Family, index int) ID {
	ids := families[family]
	if index < 0 || index >= len(ids) {
		return NoID
	}

	return ids[index]
}

// Len reports how many identifiers family holds.
func Len(family Family) int {
	return len(families[family])
}

// Families returns every known family in display order.
func Families() []Family {
	return []Family{StatCard, FeatureCard, ServiceCard, TestType, TestBadge}
}
