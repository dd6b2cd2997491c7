// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"errors"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var (
	errMissingClientIP = errors.New("missing client IP")
	errInvalidIPFormat = errors.New("invalid IP format")
)

// getClientIP extracts the client's address from r.
//
// X-Real-IP and X-Forwarded-For are only trusted when the connection itself
// comes from a private or loopback address, i.e. a reverse proxy.
func getClientIP(r *http.Request) (netip.Addr, error) {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	if remote == "" {
		return netip.Addr{}, errMissingClientIP
	}

	remoteAddr, err := netip.ParseAddr(remote)
	if err != nil {
		return netip.Addr{}, errInvalidIPFormat
	}

	remoteAddr = remoteAddr.Unmap()

	if !remoteAddr.IsPrivate() && !remoteAddr.IsLoopback() {
		return remoteAddr, nil
	}

	// X-Real-IP takes precedence; otherwise the last X-Forwarded-For hop is
	// the one our proxy saw.
	forwarded := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if forwarded == "" {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			forwarded = strings.TrimSpace(parts[len(parts)-1])
		}
	}

	if forwarded == "" {
		return remoteAddr, nil
	}

	addr, err := netip.ParseAddr(forwarded)
	if err != nil {
		return netip.Addr{}, errInvalidIPFormat
	}

	return addr.Unmap(), nil
}

// parsePassEntry accepts a CIDR or a single address.
func parsePassEntry(entry string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(entry); err == nil {
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}

	return netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()), nil
}

// getNetwork masks addr down to the configured prefix length of its family.
func getNetwork(addr netip.Addr, ipv4Prefix, ipv6Prefix int) netip.Prefix {
	bits := ipv6Prefix
	if addr.Is4() {
		bits = ipv4Prefix
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return prefix
}
