// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - a consistent way of handling errors
//
// Expected conditions (a key that is simply absent) are results, not
// errors.  Invariant violations and detected corruption are fatal and
// go through the Panic helpers so that the last messages reach the log
// before the process stops.
package fault
