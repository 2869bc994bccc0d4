// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/chaindb/fault"
)

// number of bytes in a short hash
const ShortHashLength = 20

// type for a truncated address identifier
//
// RIPEMD160 of SHA2-256 of a public key or script, the usual short
// form used to key address history
type ShortHash [ShortHashLength]byte

// NewShortHash - create a short hash from a byte slice
func NewShortHash(record []byte) ShortHash {
	first := sha256.Sum256(record)
	h := ripemd160.New()
	h.Write(first[:])

	var short ShortHash
	copy(short[:], h.Sum(nil))
	return short
}

// String - convert a binary short hash to hex string for use by the fmt package (for %s)
func (short ShortHash) String() string {
	return hex.EncodeToString(short[:])
}

// GoString - convert a binary short hash to hex string for use by the fmt package (for %#v)
func (short ShortHash) GoString() string {
	return "<RIPEMD160:" + hex.EncodeToString(short[:]) + ">"
}

// MarshalText - convert a short hash to hex text
func (short ShortHash) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(short))
	buffer := make([]byte, size)
	hex.Encode(buffer, short[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a short hash
func (short *ShortHash) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if ShortHashLength != byteCount {
		return fault.ErrInvalidKeyLength
	}
	copy(short[:], buffer)
	return nil
}

// ShortHashFromBytes - convert and validate a binary byte slice to a short hash
func ShortHashFromBytes(short *ShortHash, buffer []byte) error {
	if ShortHashLength != len(buffer) {
		return fault.ErrInvalidKeyLength
	}
	copy(short[:], buffer)
	return nil
}
