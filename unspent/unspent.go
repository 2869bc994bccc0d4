// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package unspent

import (
	"github.com/bitmark-inc/chaindb/chainhash"
)

// OutputMap - raw serialised outputs by output index
//
// a map value, so copying an UnspentTransaction shares the same
// underlying collection across all copies
type OutputMap map[uint32][]byte

// FullTransaction - what the value object needs from a parsed
// transaction; parsing belongs to the external chain library
type FullTransaction interface {
	Hash() chainhash.Digest
	IsCoinbase() bool
	Outputs() [][]byte
}

// UnspentTransaction - immutable value describing a transaction's
// unspent state
//
// identity is the transaction hash alone: height, coinbase flag and
// outputs never take part in equality
type UnspentTransaction struct {
	height     uint64
	isCoinbase bool
	hash       chainhash.Digest
	outputs    OutputMap
}

// NewFromHash - a placeholder with no outputs, e.g. for set lookup
func NewFromHash(hash chainhash.Digest) UnspentTransaction {
	return UnspentTransaction{
		hash:    hash,
		outputs: make(OutputMap),
	}
}

// NewFromPoint - a placeholder keyed by the point's transaction
func NewFromPoint(point chainhash.Point) UnspentTransaction {
	return NewFromHash(point.Hash)
}

// NewFromTransaction - populate outputs from a full transaction at a
// given height
func NewFromTransaction(tx FullTransaction, height uint64) UnspentTransaction {
	outputs := tx.Outputs()
	m := make(OutputMap, len(outputs))
	for index, output := range outputs {
		m[uint32(index)] = output
	}
	return UnspentTransaction{
		height:     height,
		isCoinbase: tx.IsCoinbase(),
		hash:       tx.Hash(),
		outputs:    m,
	}
}

// Hash - the identity of this value
func (u UnspentTransaction) Hash() chainhash.Digest {
	return u.hash
}

// Height - block height, zero for placeholders
func (u UnspentTransaction) Height() uint64 {
	return u.height
}

// IsCoinbase - coinbase flag, false for placeholders
func (u UnspentTransaction) IsCoinbase() bool {
	return u.isCoinbase
}

// Outputs - the shared output collection
func (u UnspentTransaction) Outputs() OutputMap {
	return u.outputs
}

// Equal - identity on transaction hash only
func (u UnspentTransaction) Equal(other UnspentTransaction) bool {
	return u.hash == other.hash
}
