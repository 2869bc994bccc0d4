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
	"github.com/bitmark-inc/chaindb/txstore"
)

// fetch one transaction record by hash
func runTransaction(c *cli.Context) error {
	m, err := loadConfiguration(c)
	if nil != err {
		return err
	}
	config := m.config

	if 1 != c.NArg() {
		return fault.ErrInvalidKeyLength
	}
	var hash chainhash.Digest
	_, err = fmt.Sscan(c.Args().Get(0), &hash)
	if nil != err {
		return err
	}

	store, err := txstore.Start(config.TransactionFile, config.TransactionBuckets)
	if nil != err {
		return err
	}
	defer store.Stop()

	result := store.Get(hash)
	if nil == result {
		return fault.ErrKeyNotFound
	}

	fmt.Fprintf(c.App.Writer, "height: %d\n", result.Height)
	fmt.Fprintf(c.App.Writer, "index:  %d\n", result.Index)
	fmt.Fprintf(c.App.Writer, "data:   %x\n", result.Data)
	return nil
}
