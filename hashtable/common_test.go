// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/chaindb/hashtable"
	"github.com/bitmark-inc/chaindb/mmfile"
)

// test backing files
const (
	lookupFileName = "testing-lookup.chaindb"
	rowsFileName   = "testing-rows.chaindb"

	testKeyLength = 32

	// a tiny bucket count so collisions are certain
	testBuckets = 4
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(lookupFileName)
	os.RemoveAll(rowsFileName)
}

// a 32 byte key whose bucket is selector mod testBuckets
func makeKey(selector byte) []byte {
	key := make([]byte, testKeyLength)
	key[0] = selector
	for i := 8; i < testKeyLength; i += 1 {
		key[i] = selector ^ 0x55 // differ beyond the hash prefix too
	}
	return key
}

// a slab table over a fresh file
func setupSlabTable(t *testing.T) (*mmfile.File, *hashtable.SlabTable) {
	removeFiles()

	headerSize := hashtable.HeaderSize(testBuckets)
	file, err := mmfile.Create(lookupFileName, headerSize+1024)
	if nil != err {
		t.Fatalf("create file error: %s", err)
	}

	header, err := hashtable.NewHeader(file, testBuckets)
	if nil != err {
		t.Fatalf("new header error: %s", err)
	}
	if err := header.Create(); nil != err {
		t.Fatalf("header create error: %s", err)
	}

	allocator := hashtable.NewSlabAllocator(file, headerSize)
	if err := allocator.Create(); nil != err {
		t.Fatalf("allocator create error: %s", err)
	}

	table, err := hashtable.NewSlabTable(header, allocator, testKeyLength)
	if nil != err {
		t.Fatalf("new slab table error: %s", err)
	}
	return file, table
}

// a multimap over fresh lookup and rows files, with the given row
// payload size
func setupMultimap(t *testing.T, payloadSize uint64) (*mmfile.File, *mmfile.File, *hashtable.Multimap) {
	removeFiles()

	headerSize := hashtable.HeaderSize(testBuckets)
	lookupFile, err := mmfile.Create(lookupFileName, headerSize+1024)
	if nil != err {
		t.Fatalf("create lookup file error: %s", err)
	}
	rowsFile, err := mmfile.Create(rowsFileName, 1024)
	if nil != err {
		t.Fatalf("create rows file error: %s", err)
	}

	header, err := hashtable.NewHeader(lookupFile, testBuckets)
	if nil != err {
		t.Fatalf("new header error: %s", err)
	}
	if err := header.Create(); nil != err {
		t.Fatalf("header create error: %s", err)
	}

	lookupAllocator, err := hashtable.NewRecordAllocator(lookupFile, headerSize,
		hashtable.RecordTableSize(testKeyLength, 4))
	if nil != err {
		t.Fatalf("new lookup allocator error: %s", err)
	}
	if err := lookupAllocator.Create(); nil != err {
		t.Fatalf("lookup allocator create error: %s", err)
	}

	table, err := hashtable.NewRecordTable(header, lookupAllocator, testKeyLength)
	if nil != err {
		t.Fatalf("new record table error: %s", err)
	}

	rowsAllocator, err := hashtable.NewRecordAllocator(rowsFile, 0,
		hashtable.RecordListSize(payloadSize))
	if nil != err {
		t.Fatalf("new rows allocator error: %s", err)
	}
	if err := rowsAllocator.Create(); nil != err {
		t.Fatalf("rows allocator create error: %s", err)
	}

	multimap, err := hashtable.NewMultimap(table, hashtable.NewRecordList(rowsAllocator))
	if nil != err {
		t.Fatalf("new multimap error: %s", err)
	}
	return lookupFile, rowsFile, multimap
}
