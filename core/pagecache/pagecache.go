// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pagecache is a fixed-capacity least-recently-used cache of rendered
HTML pages.

Landing page output depends only on its Key, so a rendered body can be served
again to every request with the same key. Bodies may be stored zstd-compressed;
Get always returns the original bytes.
*/
package pagecache

import (
	"container/list"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Key identifies one rendering of a page.
type Key struct {
	Path          string
	Locale        string
	Authenticated bool
	FirstName     string
	Instrument    bool
}

// String returns a stable encoding of k, used as the map key.
func (k Key) String() string {
	var sb strings.Builder

	sb.WriteString(k.Path)
	sb.WriteByte(0)
	sb.WriteString(k.Locale)
	sb.WriteByte(0)
	sb.WriteString(strconv.FormatBool(k.Authenticated))
	sb.WriteByte(0)
	sb.WriteString(k.FirstName)
	sb.WriteByte(0)
	sb.WriteString(strconv.FormatBool(k.Instrument))

	return sb.String()
}

// Stats are cumulative counters since construction.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is safe for concurrent use. Construct with New.
type Cache struct {
	size      int
	ttl       time.Duration
	evictList *list.List
	items     map[string]*list.Element
	lock      sync.Mutex

	zstdEnc *zstd.Encoder
	zstdDec *zstd.Decoder

	hits, misses, evictions atomic.Uint64

	now func() time.Time
}

type entry struct {
	key        string
	body       []byte
	compressed bool
	storedAt   time.Time
}

// New creates a cache holding at most size pages.
//
// With compress set, bodies are stored zstd-compressed when that saves space.
// A positive ttl expires entries older than it; zero keeps them until evicted.
func New(size int, compress bool, ttl time.Duration) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		ttl:       ttl,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
	}

	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores body under key, making it the most recently used entry.
// It reports whether an older entry was evicted to make room.
func (c *Cache) Add(key Key, body []byte) bool {
	stored, compressed := c.encode(body)
	k := key.String()

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[k]; ok {
		c.evictList.MoveToFront(el)

		e := el.Value.(*entry)
		e.body = stored
		e.compressed = compressed
		e.storedAt = c.now()

		return false
	}

	c.items[k] = c.evictList.PushFront(&entry{
		key:        k,
		body:       stored,
		compressed: compressed,
		storedAt:   c.now(),
	})

	if c.evictList.Len() <= c.size {
		return false
	}

	if oldest := c.evictList.Back(); oldest != nil {
		c.removeElement(oldest)
		c.evictions.Add(1)
	}

	return true
}

// Get returns a copy of the body stored under key and marks it most recently used.
func (c *Cache) Get(key Key) ([]byte, bool) {
	k := key.String()

	c.lock.Lock()

	el, ok := c.items[k]
	if !ok {
		c.lock.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	e := el.Value.(*entry)
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.removeElement(el)
		c.lock.Unlock()
		c.misses.Add(1)

		return nil, false
	}

	c.evictList.MoveToFront(el)
	stored, compressed := e.body, e.compressed

	c.lock.Unlock()

	body, err := c.decode(stored, compressed)
	if err != nil {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return body, true
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	clear(c.items)
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns the hit, miss and eviction counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// encode compresses body when enabled and worthwhile, otherwise copies it.
// zstd.Encoder supports concurrent EncodeAll calls, so no lock is held.
func (c *Cache) encode(body []byte) ([]byte, bool) {
	if c.zstdEnc != nil && len(body) > 0 {
		if out := c.zstdEnc.EncodeAll(body, nil); len(out) < len(body) {
			return out, true
		}
	}

	return append([]byte(nil), body...), false
}

func (c *Cache) decode(stored []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return append([]byte(nil), stored...), nil
	}

	return c.zstdDec.DecodeAll(stored, nil)
}
