// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historystore

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chaindb/chainhash"
	"github.com/bitmark-inc/chaindb/fault"
	"github.com/bitmark-inc/chaindb/hashtable"
	"github.com/bitmark-inc/chaindb/mmfile"
)

// DefaultBucketCount - sized for expected address cardinality; baked
// into the lookup file layout at creation
const DefaultBucketCount = 97210744

// row payload: [marker:1][point:36][height:4][value|checksum:8]
const (
	markerSize  = 1
	rowSize     = markerSize + chainhash.PointLength + 4 + 8
	heightStart = markerSize + chainhash.PointLength
	valueStart  = heightStart + 4
)

// head pointer held by each lookup record
const lookupValueSize = 4

// initial room after the header / at the start of the rows file
const minimumRecordsRegion = 1024

// Kind - what one history row records
type Kind byte

const (
	Output Kind = iota
	Spend
)

// String - kind name for use by the fmt package (for %s)
func (k Kind) String() string {
	switch k {
	case Output:
		return "output"
	case Spend:
		return "spend"
	default:
		return "invalid"
	}
}

// Row - one decoded history event, newest first in Get results
//
// Value holds the output value for an output row and the previous
// outpoint checksum for a spend row
type Row struct {
	Kind   Kind
	Point  chainhash.Point
	Height uint32
	Value  uint64
}

// Statinfo - observability counters
type Statinfo struct {
	Buckets   uint64 // lookup bucket count fixed at creation
	Addresses uint64 // lookup records, distinct addresses seen
	Rows      uint64 // total history rows ever added
}

// Store - output/spend events keyed by short address hash
//
// two mapped files: a lookup file (bucket header plus fixed head
// records) and a rows file (append-only row records, no header)
type Store struct {
	lookupFile      *mmfile.File
	rowsFile        *mmfile.File
	header          *hashtable.Header
	lookupAllocator *hashtable.RecordAllocator
	rowsAllocator   *hashtable.RecordAllocator
	multimap        *hashtable.Multimap
	log             *logger.L
}

// Create - initialise fresh lookup and rows files
func Create(lookupFilename string, rowsFilename string, buckets uint64) (*Store, error) {
	headerSize := hashtable.HeaderSize(buckets)
	lookupFile, err := mmfile.Create(lookupFilename, headerSize+minimumRecordsRegion)
	if nil != err {
		return nil, err
	}
	rowsFile, err := mmfile.Create(rowsFilename, minimumRecordsRegion)
	if nil != err {
		lookupFile.Stop()
		return nil, err
	}

	s, err := assemble(lookupFile, rowsFile, buckets)
	if nil != err {
		stopFiles(lookupFile, rowsFile)
		return nil, err
	}

	err = s.header.Create()
	if nil == err {
		err = s.lookupAllocator.Create()
	}
	if nil == err {
		err = s.rowsAllocator.Create()
	}
	if nil != err {
		stopFiles(lookupFile, rowsFile)
		return nil, err
	}

	s.log.Infof("created: %q + %q  buckets: %d", lookupFilename, rowsFilename, buckets)
	return s, nil
}

// Start - validate and attach to existing lookup and rows files
func Start(lookupFilename string, rowsFilename string, buckets uint64) (*Store, error) {
	lookupFile, err := mmfile.Open(lookupFilename)
	if nil != err {
		return nil, err
	}
	rowsFile, err := mmfile.Open(rowsFilename)
	if nil != err {
		lookupFile.Stop()
		return nil, err
	}

	s, err := assemble(lookupFile, rowsFile, buckets)
	if nil != err {
		stopFiles(lookupFile, rowsFile)
		return nil, err
	}

	err = s.header.Start()
	if nil == err {
		err = s.lookupAllocator.Start()
	}
	if nil == err {
		err = s.rowsAllocator.Start()
	}
	if nil != err {
		stopFiles(lookupFile, rowsFile)
		return nil, err
	}

	s.log.Infof("started: %q + %q  buckets: %d", lookupFilename, rowsFilename, buckets)
	return s, nil
}

// internal routine to wire the engine pieces over the two files
func assemble(lookupFile *mmfile.File, rowsFile *mmfile.File, buckets uint64) (*Store, error) {
	header, err := hashtable.NewHeader(lookupFile, buckets)
	if nil != err {
		return nil, err
	}

	lookupRecordSize := hashtable.RecordTableSize(chainhash.ShortHashLength, lookupValueSize)
	lookupAllocator, err := hashtable.NewRecordAllocator(lookupFile,
		hashtable.HeaderSize(buckets), lookupRecordSize)
	if nil != err {
		return nil, err
	}
	table, err := hashtable.NewRecordTable(header, lookupAllocator, chainhash.ShortHashLength)
	if nil != err {
		return nil, err
	}

	rowsAllocator, err := hashtable.NewRecordAllocator(rowsFile, 0, hashtable.RecordListSize(rowSize))
	if nil != err {
		return nil, err
	}
	rows := hashtable.NewRecordList(rowsAllocator)

	multimap, err := hashtable.NewMultimap(table, rows)
	if nil != err {
		return nil, err
	}

	s := &Store{
		lookupFile:      lookupFile,
		rowsFile:        rowsFile,
		header:          header,
		lookupAllocator: lookupAllocator,
		rowsAllocator:   rowsAllocator,
		multimap:        multimap,
		log:             logger.New("historystore"),
	}
	return s, nil
}

// internal cleanup for partly opened stores
func stopFiles(lookupFile *mmfile.File, rowsFile *mmfile.File) {
	lookupFile.Stop()
	rowsFile.Stop()
}

// AddOutput - append an output event for an address
func (s *Store) AddOutput(key chainhash.ShortHash, point chainhash.Point, height uint32, value uint64) error {
	return s.addRow(key, Output, point, height, value)
}

// AddSpend - append a spend event for an address
//
// checksum identifies the spent outpoint (Point.Checksum of the
// previous output)
func (s *Store) AddSpend(key chainhash.ShortHash, point chainhash.Point, height uint32, checksum uint64) error {
	return s.addRow(key, Spend, point, height, checksum)
}

// internal routine to serialise and prepend one row
func (s *Store) addRow(key chainhash.ShortHash, kind Kind, point chainhash.Point, height uint32, value uint64) error {
	return s.multimap.AddRow(key[:], func(payload []byte) {
		payload[0] = byte(kind)
		copy(payload[markerSize:], point.ToData())
		binary.LittleEndian.PutUint32(payload[heightStart:], height)
		binary.LittleEndian.PutUint64(payload[valueStart:], value)
	})
}

// DeleteLastRow - undo the most recent add for an address
//
// used to roll back a reorganised block; an address with no rows is
// a fatal fault
func (s *Store) DeleteLastRow(key chainhash.ShortHash) {
	s.multimap.DeleteLastRow(key[:])
}

// Get - decoded rows for an address, newest first
//
// rows below fromHeight are skipped when fromHeight is non-zero, a
// row at exactly fromHeight is included; at most limit rows are
// returned when limit is non-zero
func (s *Store) Get(key chainhash.ShortHash, limit uint64, fromHeight uint64) []Row {
	result := []Row(nil)
	list := s.multimap.List()

	iterator := s.multimap.Rows(key[:])
	for {
		index, ok := iterator.Next()
		if !ok {
			break
		}
		if 0 != limit && uint64(len(result)) >= limit {
			break
		}

		payload := list.Payload(index)
		height := binary.LittleEndian.Uint32(payload[heightStart:])
		if 0 != fromHeight && uint64(height) < fromHeight {
			continue
		}

		result = append(result, decodeRow(payload))
	}
	return result
}

// internal routine to decode one row payload
func decodeRow(payload []byte) Row {
	marker := payload[0]
	if marker > 1 {
		fault.Panicf("historystore: invalid row marker: %d", marker)
	}

	row := Row{
		Kind:   Kind(marker),
		Height: binary.LittleEndian.Uint32(payload[heightStart:]),
		Value:  binary.LittleEndian.Uint64(payload[valueStart:]),
	}
	err := chainhash.PointFromBytes(&row.Point, payload[markerSize:markerSize+chainhash.PointLength])
	if nil != err {
		fault.Panicf("historystore: invalid row point: %v", err)
	}
	return row
}

// GetStatinfo - bucket count and both allocators' record counts
func (s *Store) GetStatinfo() Statinfo {
	return Statinfo{
		Buckets:   s.header.BucketCount(),
		Addresses: s.lookupAllocator.Count(),
		Rows:      s.rowsAllocator.Count(),
	}
}

// Sync - flush both allocators' metadata
func (s *Store) Sync() error {
	err := s.lookupAllocator.Sync()
	if nil != err {
		return err
	}
	return s.rowsAllocator.Sync()
}

// Stop - flush and release both mappings
func (s *Store) Stop() error {
	err := s.lookupFile.Stop()
	err2 := s.rowsFile.Stop()
	if nil != err {
		return err
	}
	return err2
}
