// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txstore

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chaindb/chainhash"
	"github.com/bitmark-inc/chaindb/fault"
	"github.com/bitmark-inc/chaindb/hashtable"
	"github.com/bitmark-inc/chaindb/mmfile"
)

// DefaultBucketCount - sized for expected transaction cardinality to
// keep chains short; the count is baked into the file layout so it
// can only be changed by rebuilding the store
const DefaultBucketCount = 100000000

// initial room after the bucket header for the slab region
const minimumSlabRegion = 1024

// Transaction - the wire serialisation surface the store needs
//
// parsing and construction belong to the external chain library
type Transaction interface {
	Hash() chainhash.Digest
	ToData() []byte
}

// Result - one stored transaction
//
// Data is the actual mapped memory - copy it if it must be preserved
// across a mutating operation
type Result struct {
	Height uint32
	Index  uint32
	Data   []byte
}

// Store - transactions keyed by hash over one mapped file
//
// the file is a bucket header followed by an append-only slab region
type Store struct {
	file      *mmfile.File
	header    *hashtable.Header
	allocator *hashtable.SlabAllocator
	table     *hashtable.SlabTable
	log       *logger.L
}

// Create - initialise a fresh store file
//
// the file is pre-sized to the bucket header plus a minimum slab
// region before the structures are written
func Create(filename string, buckets uint64) (*Store, error) {
	headerSize := hashtable.HeaderSize(buckets)
	file, err := mmfile.Create(filename, headerSize+minimumSlabRegion)
	if nil != err {
		return nil, err
	}

	s, err := assemble(file, buckets)
	if nil != err {
		file.Stop()
		return nil, err
	}

	err = s.header.Create()
	if nil == err {
		err = s.allocator.Create()
	}
	if nil != err {
		file.Stop()
		return nil, err
	}

	s.log.Infof("created: %q  buckets: %d", filename, buckets)
	return s, nil
}

// Start - validate and attach to an existing store file
//
// fails if the file is truncated relative to the declared bucket
// count or the recorded slab end is inconsistent
func Start(filename string, buckets uint64) (*Store, error) {
	file, err := mmfile.Open(filename)
	if nil != err {
		return nil, err
	}

	s, err := assemble(file, buckets)
	if nil != err {
		file.Stop()
		return nil, err
	}

	err = s.header.Start()
	if nil == err {
		err = s.allocator.Start()
	}
	if nil != err {
		file.Stop()
		return nil, err
	}

	s.log.Infof("started: %q  buckets: %d", filename, buckets)
	return s, nil
}

// internal routine to wire header, allocator and table over a file
func assemble(file *mmfile.File, buckets uint64) (*Store, error) {
	header, err := hashtable.NewHeader(file, buckets)
	if nil != err {
		return nil, err
	}
	allocator := hashtable.NewSlabAllocator(file, hashtable.HeaderSize(buckets))
	table, err := hashtable.NewSlabTable(header, allocator, chainhash.DigestLength)
	if nil != err {
		return nil, err
	}
	s := &Store{
		file:      file,
		header:    header,
		allocator: allocator,
		table:     table,
		log:       logger.New("txstore"),
	}
	return s, nil
}

// StoreTransaction - index a transaction at its block position
//
// the slab value is [height:4][index:4][raw bytes] little endian;
// height and index beyond 32 bits indicate caller corruption and are
// fatal
func (s *Store) StoreTransaction(height uint64, index uint64, tx Transaction) error {
	if height > 0xffffffff {
		fault.Panicf("txstore.StoreTransaction: height out of range: %d", height)
	}
	if index > 0xffffffff {
		fault.Panicf("txstore.StoreTransaction: index out of range: %d", index)
	}

	key := tx.Hash()
	data := tx.ToData()

	return s.table.Store(key[:], uint64(8+len(data)), func(value []byte) {
		binary.LittleEndian.PutUint32(value, uint32(height))
		binary.LittleEndian.PutUint32(value[4:], uint32(index))
		copy(value[8:], data)
	})
}

// Get - the stored record for a transaction hash
//
// nil means not found, which is normal control flow not an error
func (s *Store) Get(hash chainhash.Digest) *Result {
	value := s.table.Find(hash[:])
	if nil == value {
		return nil
	}
	return &Result{
		Height: binary.LittleEndian.Uint32(value),
		Index:  binary.LittleEndian.Uint32(value[4:]),
		Data:   value[8:],
	}
}

// Has - true if a transaction hash is stored
func (s *Store) Has(hash chainhash.Digest) bool {
	return nil != s.table.Find(hash[:])
}

// Remove - unlink a transaction known to be stored
//
// removal of an unknown transaction is a programming error
func (s *Store) Remove(hash chainhash.Digest) {
	if !s.table.Unlink(hash[:]) {
		fault.Panicf("txstore.Remove: transaction not found: %s", hash)
	}
}

// Sync - flush the allocator's logical end
//
// the only durability checkpoint: after a crash, Start recovers to
// the last synced state and later unindexed slabs become garbage at
// the tail
func (s *Store) Sync() error {
	return s.allocator.Sync()
}

// Stop - flush and release the mapping
func (s *Store) Stop() error {
	return s.file.Stop()
}
