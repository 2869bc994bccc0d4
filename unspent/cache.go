// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unspent

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/chaindb/chainhash"
)

// Cache - expiring unspent transactions keyed by hash
//
// sits above the transaction store to avoid re-reading hot entries;
// entries age out rather than being evicted by size
type Cache struct {
	entries *gocache.Cache
}

// NewCache - create a cache with the given entry lifetime
func NewCache(expiry time.Duration, cleanup time.Duration) *Cache {
	return &Cache{
		entries: gocache.New(expiry, cleanup),
	}
}

// Add - insert or refresh an entry
func (c *Cache) Add(u UnspentTransaction) {
	c.entries.Set(u.Hash().String(), u, gocache.DefaultExpiration)
}

// Get - fetch an entry by transaction hash
func (c *Cache) Get(hash chainhash.Digest) (UnspentTransaction, bool) {
	item, found := c.entries.Get(hash.String())
	if !found {
		return UnspentTransaction{}, false
	}
	return item.(UnspentTransaction), true
}

// Remove - drop an entry, e.g. when fully spent
func (c *Cache) Remove(hash chainhash.Digest) {
	c.entries.Delete(hash.String())
}

// Len - current number of cached entries
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}
