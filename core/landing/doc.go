// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package landing holds the constant content of the landing page and the
one-shot mount lifecycle that drives the hero entrance transition.

The tables are package-private. Accessors return deep copies, so nothing a
caller does to the result can change what the next render sees.
*/
package landing
