// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ui

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"codeberg.org/testpro/testpro/core/devid"
)

// Dev identifies an element for design-time tooling.
type Dev struct {
	ID          devid.ID
	Name        string
	Description string
}

// NoDev marks an element that is not registered.
var NoDev = Dev{}

// Registered returns the Dev for a registry identifier.
// Unknown identifiers keep their ID and get no name or description.
func Registered(id devid.ID) Dev {
	entry, ok := devid.Lookup(id)
	if !ok {
		return Dev{ID: id}
	}

	return Dev{ID: entry.ID, Name: entry.Name, Description: entry.Description}
}

func (d Dev) inert() bool {
	return d.ID == "" || d.ID == devid.NoID
}

// attrs returns the data-dev-* attributes, or nothing when instrument is off.
func (d Dev) attrs(instrument bool) []g.Node {
	if !instrument || d.inert() {
		return nil
	}

	nodes := []g.Node{h.Data("dev-id", string(d.ID))}

	if d.Name != "" {
		nodes = append(nodes, h.Data("dev-name", d.Name))
	}

	if d.Description != "" {
		nodes = append(nodes, h.Data("dev-description", d.Description))
	}

	return nodes
}
