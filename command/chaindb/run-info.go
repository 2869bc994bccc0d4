// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chaindb/historystore"
)

// show history store statistics
func runInfo(c *cli.Context) error {
	m, err := loadConfiguration(c)
	if nil != err {
		return err
	}
	config := m.config

	history, err := historystore.Start(config.HistoryLookupFile, config.HistoryRowsFile, config.HistoryBuckets)
	if nil != err {
		return err
	}
	defer history.Stop()

	info := history.GetStatinfo()
	fmt.Fprintf(c.App.Writer, "buckets:   %d\n", info.Buckets)
	fmt.Fprintf(c.App.Writer, "addresses: %d\n", info.Addresses)
	fmt.Fprintf(c.App.Writer, "rows:      %d\n", info.Rows)
	return nil
}
