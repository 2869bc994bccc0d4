// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txstore - full transactions keyed by transaction hash
//
// A thin composition over the slab hash table: one mapped file, keys
// are 32 byte digests, values are the block height, the index within
// the block and the raw transaction bytes.
package txstore
