// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/swfe/bankd/storage"
)

type metadata struct {
	directory *storage.Directory
	journal   string
	json      bool
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "bank-cli"
	app.Usage = "inspect bankd account files and journal"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: " output JSON instead of text",
		},
		cli.StringFlag{
			Name:  "accounts, a",
			Value: "",
			Usage: "*account directory `DIR`",
		},
		cli.StringFlag{
			Name:  "index, x",
			Value: storage.DefaultIndexName,
			Usage: " index file `NAME` within the account directory",
		},
		cli.StringFlag{
			Name:  "journal, j",
			Value: "",
			Usage: " journal database `DIR`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "list accounts in index order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " only accounts owned by or entrusted to `NAME`",
				},
			},
			Action: runList,
		},
		{
			Name:      "show",
			Usage:     "display one account",
			ArgsUsage: "CODE\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runShow,
		},
		{
			Name:      "total",
			Usage:     "exact sum of all balances",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "owners, o",
					Usage: " also show the total for each owner",
				},
			},
			Action: runTotal,
		},
		{
			Name:      "verify",
			Usage:     "check every account file and the index",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runVerify,
		},
		{
			Name:      "journal",
			Usage:     "display journal entries",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "from, f",
					Value: 0,
					Usage: " first sequence `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum entries to display `COUNT`, 0 for all",
				},
			},
			Action: runJournal,
		},
	}

	// read the account directory
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		if "" == command || "help" == command || "h" == command {
			return nil
		}

		accounts := c.GlobalString("accounts")
		if "" == accounts {
			return ErrMissingAccounts
		}
		info, err := os.Stat(accounts)
		if nil != err {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: %q", ErrNotDirectory, accounts)
		}

		if err := initialiseLogger(verbose); nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "accounts: %q\n", accounts)
		}

		directory, err := storage.New(accounts, c.GlobalString("index"), logger.New("storage"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			directory: directory,
			journal:   c.GlobalString("journal"),
			json:      c.GlobalBool("json"),
			verbose:   verbose,
			e:         e,
			w:         w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// warnings go to the console only when verbose
func initialiseLogger(verbose bool) error {
	level := "critical"
	if verbose {
		level = "warn"
	}
	return logger.Initialise(logger.Configuration{
		Directory: os.TempDir(),
		File:      "bank-cli.log",
		Size:      1048576,
		Count:     2,
		Console:   verbose,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
}
