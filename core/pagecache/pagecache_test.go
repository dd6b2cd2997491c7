// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package pagecache

import (
	"bytes"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(locale string) Key {
	return Key{Path: "/", Locale: locale}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(0, false, 0)
	require.ErrorIs(t, err, ErrInvalidSize)

	c, err := New(3, true, 0)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestKeyDistinguishesFields(t *testing.T) {
	t.Parallel()

	base := Key{Path: "/", Locale: "en"}
	variants := []Key{
		{Path: "/", Locale: "es"},
		{Path: "/", Locale: "en", Authenticated: true},
		{Path: "/", Locale: "en", Authenticated: true, FirstName: "Ada"},
		{Path: "/", Locale: "en", Instrument: true},
		{Path: "/x", Locale: "en"},
	}

	for _, v := range variants {
		assert.NotEqual(t, base.String(), v.String(), "%+v", v)
	}

	assert.Equal(t, base.String(), Key{Path: "/", Locale: "en"}.String())
}

func TestHitAndMiss(t *testing.T) {
	t.Parallel()

	c, err := New(2, false, 0)
	require.NoError(t, err)

	_, ok := c.Get(key("en"))
	assert.False(t, ok)

	c.Add(key("en"), []byte("<html>en</html>"))

	body, ok := c.Get(key("en"))
	require.True(t, ok)
	assert.Equal(t, "<html>en</html>", string(body))

	assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())
}

func TestEviction(t *testing.T) {
	t.Parallel()

	c, err := New(2, false, 0)
	require.NoError(t, err)

	assert.False(t, c.Add(key("a"), []byte("a")))
	assert.False(t, c.Add(key("b"), []byte("b")))

	// Touch "a" so "b" becomes the least recently used.
	_, ok := c.Get(key("a"))
	require.True(t, ok)

	assert.True(t, c.Add(key("c"), []byte("c")))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(key("b"))
	assert.False(t, ok)

	_, ok = c.Get(key("a"))
	assert.True(t, ok)

	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestUpdateExisting(t *testing.T) {
	t.Parallel()

	c, err := New(1, false, 0)
	require.NoError(t, err)

	c.Add(key("a"), []byte("old"))
	assert.False(t, c.Add(key("a"), []byte("new")))

	body, _ := c.Get(key("a"))
	assert.Equal(t, "new", string(body))
}

func TestCompressedRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := New(4, true, 0)
	require.NoError(t, err)

	page := bytes.Repeat([]byte(`<div class="bg-white/5 rounded-xl">TestPro</div>`), 200)
	c.Add(key("en"), page)

	stored := c.items[key("en").String()].Value.(*entry)
	assert.True(t, stored.compressed)
	assert.Less(t, len(stored.body), len(page))

	body, ok := c.Get(key("en"))
	require.True(t, ok)
	assert.Equal(t, page, body)

	// Incompressible tiny bodies are stored as-is.
	c.Add(key("es"), []byte("x"))
	assert.False(t, c.items[key("es").String()].Value.(*entry).compressed)
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	c, err := New(1, false, 0)
	require.NoError(t, err)

	src := []byte("page")
	c.Add(key("en"), src)
	src[0] = 'X'

	body, _ := c.Get(key("en"))
	body[1] = 'Y'

	again, _ := c.Get(key("en"))
	assert.Equal(t, "page", string(again))
}

func TestTTL(t *testing.T) {
	t.Parallel()

	c, err := New(2, false, time.Minute)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add(key("en"), []byte("page"))

	now = now.Add(30 * time.Second)
	_, ok := c.Get(key("en"))
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get(key("en"))
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestPurge(t *testing.T) {
	t.Parallel()

	c, err := New(3, true, 0)
	require.NoError(t, err)

	c.Add(key("a"), []byte("a"))
	c.Add(key("b"), []byte("b"))
	c.Purge()

	assert.Zero(t, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c, err := New(8, true, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			k := key(strconv.Itoa(i % 10))
			body := bytes.Repeat([]byte(k.Locale), 512)

			for range 50 {
				c.Add(k, body)

				if got, ok := c.Get(k); ok {
					assert.Equal(t, body, got)
				}
			}
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
