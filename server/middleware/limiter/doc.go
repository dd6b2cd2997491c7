// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits requests per client network.

Clients are grouped by network prefix (limiter.ipv4Prefix and
limiter.ipv6Prefix) and share one token bucket. Addresses on the pass list
are never limited. Buckets idle for longer than an hour are dropped by a
cleanup loop bound to the server context.
*/
package limiter
