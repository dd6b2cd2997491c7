// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package ui holds the presentational primitives pages are composed from.

Every primitive takes a class string that is appended to its base classes,
and a Dev triple. Dev data attributes are only written when the Kit has
instrumentation enabled, so production markup carries none of them.
*/
package ui
