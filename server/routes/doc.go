// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes holds the HTTP handlers.

Handlers return an error instead of writing one; middleware.CatchError turns
unhandled errors and 404s into the themed error page.
*/
package routes
