// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chaindb/chainhash"
	"github.com/bitmark-inc/chaindb/fault"
	"github.com/bitmark-inc/chaindb/historystore"
)

// list history rows for an address, newest first
func runHistory(c *cli.Context) error {
	m, err := loadConfiguration(c)
	if nil != err {
		return err
	}
	config := m.config

	if 1 != c.NArg() {
		return fault.ErrInvalidKeyLength
	}
	var address chainhash.ShortHash
	err = address.UnmarshalText([]byte(c.Args().Get(0)))
	if nil != err {
		return err
	}

	history, err := historystore.Start(config.HistoryLookupFile, config.HistoryRowsFile, config.HistoryBuckets)
	if nil != err {
		return err
	}
	defer history.Stop()

	rows := history.Get(address, c.Uint64("limit"), c.Uint64("from-height"))
	for _, row := range rows {
		fmt.Fprintf(c.App.Writer, "%-6s  height: %-9d point: %s  value: %d\n",
			row.Kind, row.Height, row.Point, row.Value)
	}
	if m.verbose {
		fmt.Fprintf(c.App.Writer, "rows: %d\n", len(rows))
	}
	return nil
}
