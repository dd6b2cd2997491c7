// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupID(t *testing.T) {
	t.Parallel()

	errUnknown := errors.New("unknown")

	lookup := func(name string) (string, error) {
		switch name {
		case "www-data":
			return "33", nil
		case "weird":
			return "x", nil
		default:
			return "", errUnknown
		}
	}

	id, err := lookupID("", lookup)
	require.NoError(t, err)
	assert.Equal(t, -1, id)

	id, err = lookupID("1000", lookup)
	require.NoError(t, err)
	assert.Equal(t, 1000, id)

	id, err = lookupID("www-data", lookup)
	require.NoError(t, err)
	assert.Equal(t, 33, id)

	_, err = lookupID("nobody-here", lookup)
	require.ErrorIs(t, err, errUnknown)

	_, err = lookupID("weird", lookup)
	require.Error(t, err)
}

func TestListenTCP(t *testing.T) {
	t.Parallel()

	l, err := listenTCP(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	assert.Equal(t, "tcp", l.Addr().Network())
}

func TestListenUnix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "testpro.sock")

	l, err := listenUnix(context.Background(), path, 0o660, socketOwner{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o660), fi.Mode().Perm())
	assert.NotZero(t, fi.Mode()&os.ModeSocket)
}
