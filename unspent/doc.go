// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unspent - the unspent transaction value object and cache
//
// Not engine logic: a simple immutable value used by the caching
// layer above the transaction store.
package unspent
