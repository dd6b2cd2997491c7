// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain and the CatchError
adapter for handlers that return errors.

The chain is assembled in router.RegisterMiddleware.
*/
package middleware
