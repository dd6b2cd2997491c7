// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/config"
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

// socketOwner names the owner of a unix socket. Either field may be a
// numeric id or a name; an empty field leaves that id unchanged.
type socketOwner struct {
	user  string
	group string
}

// listen opens the unix socket when one is configured, and a TCP listener on
// host:port otherwise.
func listen(ctx context.Context) (net.Listener, error) {
	basic := config.Global.Basic

	if basic.UnixSocket != "" {
		owner := socketOwner{user: basic.UnixSocketUser, group: basic.UnixSocketGroup}

		return listenUnix(ctx, basic.UnixSocket, basic.UnixSocketPermissions, owner)
	}

	return listenTCP(ctx, net.JoinHostPort(basic.Host, basic.Port))
}

func listenTCP(ctx context.Context, addr string) (net.Listener, error) {
	l, err := new(net.ListenConfig).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	bound := l.Addr().(*net.TCPAddr)

	log.Info().
		Stringer("address", bound).
		Int("port", bound.Port).
		Str("url", fmt.Sprintf("http://testpro.localhost:%d/", bound.Port)).
		Msg("Listening on address")

	return l, nil
}

func listenUnix(ctx context.Context, path string, mode os.FileMode, owner socketOwner) (net.Listener, error) {
	l, err := new(net.ListenConfig).Listen(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", path, err)
	}

	if err := prepareSocket(path, mode, owner); err != nil {
		_ = l.Close()

		return nil, err
	}

	log.Info().
		Str("address", path).
		Stringer("mode", mode).
		Msg("Listening on Unix domain socket")

	return l, nil
}

// prepareSocket applies ownership, then permissions, to the socket file.
func prepareSocket(path string, mode os.FileMode, owner socketOwner) error {
	uid, err := lookupID(owner.user, lookupUser)
	if err != nil {
		return err
	}

	gid, err := lookupID(owner.group, lookupGroup)
	if err != nil {
		return err
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(path, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

func lookupUser(name string) (string, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}

	return u.Uid, nil
}

func lookupGroup(name string) (string, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return "", err
	}

	return g.Gid, nil
}

// lookupID resolves a numeric id or a name through lookup.
// An empty value yields -1, which os.Chown leaves unchanged.
func lookupID(value string, lookup func(string) (string, error)) (int, error) {
	if value == "" {
		return -1, nil
	}

	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	raw, err := lookup(value)
	if err != nil {
		return -1, fmt.Errorf("failed to look up %q: %w", value, err)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1, fmt.Errorf("non-numeric id %q for %q: %w", raw, value, err)
	}

	return id, nil
}
