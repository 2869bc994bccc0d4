// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mmfile - growable memory mapped backing files
//
// A File owns one mapping over one operating system file.  Growing
// the file remaps it, so byte ranges are only handed out through
// generation tagged Handles: using a Handle issued before the last
// Resize is a fatal fault, never silent corruption.
//
// There is no internal locking.  One writer, any number of readers,
// and the caller keeps readers away from grows.
package mmfile
