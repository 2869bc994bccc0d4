// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chaindb/chainhash"
	"github.com/bitmark-inc/chaindb/historystore"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
//
// low level inspection of history store files without a
// configuration file: point it at the two files directly
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "lookup", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
		{Long: "rows", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'r'},
		{Long: "buckets", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'b'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["lookup"]) || 1 != len(options["rows"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--count=N] [--buckets=N] --lookup=FILE --rows=FILE [address...]", program)
	}

	verbose := len(options["verbose"]) > 0

	buckets := uint64(historystore.DefaultBucketCount)
	if len(options["buckets"]) > 0 {
		buckets, err = strconv.ParseUint(options["buckets"][0], 10, 64)
		if nil != err {
			exitwithstatus.Message("%s: convert buckets error: %s", program, err)
		}
	}

	count := uint64(0)
	if len(options["count"]) > 0 {
		count, err = strconv.ParseUint(options["count"][0], 10, 64)
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "chaindb-dump.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	err = logger.Initialise(logging)
	if nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	store, err := historystore.Start(options["lookup"][0], options["rows"][0], buckets)
	if nil != err {
		exitwithstatus.Message("%s: cannot start store: %s", program, err)
	}
	defer store.Stop()

	info := store.GetStatinfo()
	fmt.Printf("buckets: %d  addresses: %d  rows: %d\n", info.Buckets, info.Addresses, info.Rows)

	for _, argument := range arguments {
		var address chainhash.ShortHash
		err = address.UnmarshalText([]byte(argument))
		if nil != err {
			exitwithstatus.Message("%s: invalid address: %q  error: %s", program, argument, err)
		}

		rows := store.Get(address, count, 0)
		fmt.Printf("%s: %d rows\n", address, len(rows))
		for i, row := range rows {
			if verbose {
				fmt.Printf("  %4d: %-6s  height: %-9d point: %s  value: %d\n",
					i, row.Kind, row.Height, row.Point, row.Value)
			} else {
				fmt.Printf("  %4d: %-6s  height: %d\n", i, row.Kind, row.Height)
			}
		}
	}
}
