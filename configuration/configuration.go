// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/chaindb/fault"
	"github.com/bitmark-inc/chaindb/historystore"
	"github.com/bitmark-inc/chaindb/txstore"
)

// basic defaults (files are relative to the DataDirectory)
const (
	defaultTransactionFile   = "transactions.chaindb"
	defaultHistoryLookupFile = "history-lookup.chaindb"
	defaultHistoryRowsFile   = "history-rows.chaindb"

	defaultLogDirectory = "log"
	defaultLogFile      = "chaindb.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - the chaindb configuration
//
// bucket counts trade header footprint for chain length: one 8 byte
// slot per bucket up front against fewer probes per lookup; they are
// baked into the file layout so changing them means rebuilding
type Configuration struct {
	DataDirectory      string               `gluamapper:"data_directory"`
	TransactionFile    string               `gluamapper:"transaction_file"`
	TransactionBuckets uint64               `gluamapper:"transaction_buckets"`
	HistoryLookupFile  string               `gluamapper:"history_lookup_file"`
	HistoryRowsFile    string               `gluamapper:"history_rows_file"`
	HistoryBuckets     uint64               `gluamapper:"history_buckets"`
	Logging            logger.Configuration `gluamapper:"logging"`
}

// Read - parse a Lua configuration file and fill in defaults
func Read(fileName string) (*Configuration, error) {

	options := &Configuration{
		TransactionFile:    defaultTransactionFile,
		TransactionBuckets: txstore.DefaultBucketCount,
		HistoryLookupFile:  defaultHistoryLookupFile,
		HistoryRowsFile:    defaultHistoryRowsFile,
		HistoryBuckets:     historystore.DefaultBucketCount,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	err := ParseConfigurationFile(fileName, options)
	if nil != err {
		return nil, err
	}

	if "" == options.DataDirectory {
		return nil, fault.ErrNotInitialised
	}
	info, err := os.Stat(options.DataDirectory)
	if nil != err {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fault.ErrNotInitialised
	}

	// relative files live in the data directory
	options.TransactionFile = resolve(options.DataDirectory, options.TransactionFile)
	options.HistoryLookupFile = resolve(options.DataDirectory, options.HistoryLookupFile)
	options.HistoryRowsFile = resolve(options.DataDirectory, options.HistoryRowsFile)
	options.Logging.Directory = resolve(options.DataDirectory, options.Logging.Directory)

	if 0 == options.TransactionBuckets || 0 == options.HistoryBuckets {
		return nil, fault.ErrBucketCountTooSmall
	}

	return options, nil
}

// internal routine to anchor relative paths
func resolve(directory string, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(directory, name)
}
