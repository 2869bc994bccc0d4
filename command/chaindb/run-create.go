// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/chaindb/historystore"
	"github.com/bitmark-inc/chaindb/txstore"
)

// initialise empty store files at the configured paths
func runCreate(c *cli.Context) error {
	m, err := loadConfiguration(c)
	if nil != err {
		return err
	}
	config := m.config

	transactions, err := txstore.Create(config.TransactionFile, config.TransactionBuckets)
	if nil != err {
		return err
	}
	err = transactions.Sync()
	if nil == err {
		err = transactions.Stop()
	}
	if nil != err {
		return err
	}

	history, err := historystore.Create(config.HistoryLookupFile, config.HistoryRowsFile, config.HistoryBuckets)
	if nil != err {
		return err
	}
	err = history.Sync()
	if nil == err {
		err = history.Stop()
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(c.App.Writer, "created: %q  buckets: %d\n", config.TransactionFile, config.TransactionBuckets)
		fmt.Fprintf(c.App.Writer, "created: %q + %q  buckets: %d\n",
			config.HistoryLookupFile, config.HistoryRowsFile, config.HistoryBuckets)
	}
	return nil
}
