// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package historystore_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chaindb/chainhash"
)

// test files
const (
	logDirectory   = "testing"
	lookupFileName = "testing-history-lookup.chaindb"
	rowsFileName   = "testing-history-rows.chaindb"

	// a tiny bucket count so collisions are certain
	testBuckets = 16
)

// sample addresses and points
var (
	addressOne = chainhash.NewShortHash([]byte("address one"))
	addressTwo = chainhash.NewShortHash([]byte("address two"))

	pointA = chainhash.Point{
		Hash:  chainhash.NewDigest([]byte("transaction a")),
		Index: 0,
	}
	pointB = chainhash.Point{
		Hash:  chainhash.NewDigest([]byte("transaction b")),
		Index: 1,
	}
	pointC = chainhash.Point{
		Hash:  chainhash.NewDigest([]byte("transaction c")),
		Index: 2,
	}
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(logDirectory)
	os.RemoveAll(lookupFileName)
	os.RemoveAll(rowsFileName)
}

func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)

	rc := m.Run()
	removeFiles()
	os.Exit(rc)
}
