// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashtable - on-disk hash tables over memory mapped files
//
// A table is a fixed bucket header at the front of a mapped file
// followed by an append-only allocation region.  Two allocation
// strategies are provided:
//
//   - slab: variable length blocks, one key/value pair per slab,
//     chained per bucket through 8 byte file offsets
//   - record: fixed length blocks addressed by 4 byte record index,
//     several independent logical tables can share the strategy with
//     different record sizes
//
// The record multimap combines a record table (key to head-of-chain)
// with a record list whose rows carry a previous link, giving O(1)
// prepend and an undo-last-append used for chain reorganisation.
//
// Deleted entries are only unlinked, space is never reclaimed; files
// grow without bound under heavy rewrite.  This is a deliberate
// trade-off for simple lock-free appends.
package hashtable
