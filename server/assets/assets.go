// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded static assets.

FS is rooted at the repository root: static files live under assets/ and the
gettext catalogues under po/.
*/
package assets

import "io/fs"

// FS is set by package main to the embedded filesystem.
var FS fs.FS
