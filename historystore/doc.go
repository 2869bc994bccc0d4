// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package historystore - address history as an appendable row list
//
// Each short address hash maps to a chain of fixed size rows, one
// per output or spend event, linked newest first.  Appending is O(1)
// and the newest row can be removed again, which is what a chain
// reorganisation needs.
package historystore
