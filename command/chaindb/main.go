// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/chaindb/configuration"
	"github.com/bitmark-inc/chaindb/fault"

	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

type metadata struct {
	config  *configuration.Configuration
	verbose bool
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "chaindb"
	app.Usage = "inspect and administer chaindb store files"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "create",
			Usage:  "initialise empty store files",
			Action: runCreate,
		},
		{
			Name:   "info",
			Usage:  "show history store statistics",
			Action: runInfo,
		},
		{
			Name:      "transaction",
			Usage:     "fetch one transaction record",
			ArgsUsage: "\n   TXID  (big endian hex transaction hash)",
			Action:    runTransaction,
		},
		{
			Name:      "history",
			Usage:     "list history rows for an address, newest first",
			ArgsUsage: "\n   ADDRESS  (hex short hash)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "limit, l",
					Value: 0,
					Usage: " maximum rows, 0 for all",
				},
				cli.Uint64Flag{
					Name:  "from-height, f",
					Value: 0,
					Usage: " skip rows below this height, 0 for all",
				},
			},
			Action: runHistory,
		},
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}

// read configuration and start logging, shared by all commands
func loadConfiguration(c *cli.Context) (*metadata, error) {
	fileName := c.GlobalString("config-file")
	if "" == fileName {
		return nil, fault.ErrNotFoundConfigFile
	}

	config, err := configuration.Read(fileName)
	if nil != err {
		return nil, err
	}

	err = logger.Initialise(config.Logging)
	if nil != err {
		return nil, err
	}

	m := &metadata{
		config:  config,
		verbose: c.GlobalBool("verbose"),
	}
	return m, nil
}
