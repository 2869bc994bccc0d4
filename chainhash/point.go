// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/chaindb/fault"
)

// number of bytes in a serialised point
const PointLength = DigestLength + 4

// a transaction output or input reference
//
// identifies one output (or the input spending it) as the pair of
// the owning transaction digest and the position within that
// transaction
type Point struct {
	Hash  Digest
	Index uint32
}

// ToData - serialise a point as [hash:32][index:4] little endian
func (p Point) ToData() []byte {
	buffer := make([]byte, PointLength)
	copy(buffer, p.Hash[:])
	binary.LittleEndian.PutUint32(buffer[DigestLength:], p.Index)
	return buffer
}

// PointFromBytes - convert and validate a binary byte slice to a point
func PointFromBytes(p *Point, buffer []byte) error {
	if PointLength != len(buffer) {
		return fault.ErrInvalidKeyLength
	}
	copy(p.Hash[:], buffer[:DigestLength])
	p.Index = binary.LittleEndian.Uint32(buffer[DigestLength:])
	return nil
}

// Checksum - compress a point to a 64 bit identity
//
// the top 48 bits of the hash combined with the low 16 bits of the
// index; collision-tolerant, used only as a spend back-reference
func (p Point) Checksum() uint64 {
	hash64 := binary.LittleEndian.Uint64(p.Hash[:8])
	return (hash64 & 0xffffffffffff0000) | (uint64(p.Index) & 0x0000ffff)
}

// String - convert a point to its hash:index form for use by the fmt package (for %s)
func (p Point) String() string {
	return fmt.Sprintf("%s:%d", p.Hash, p.Index)
}
