// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash - fixed width identifiers used as store keys
//
// A Digest is the double SHA2-256 of a serialised transaction, a
// ShortHash is the RIPEMD160-SHA256 address form and a Point pairs a
// digest with an output index.  The store engine only ever treats
// these as opaque fixed length keys.
package chainhash
