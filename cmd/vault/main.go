package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/intecu/filevault/core/vault"
	"github.com/intecu/filevault/lib/logger"
)

var log, _ = logger.New("vault")

func main() {
	cfg, err := vault.GetConfig()
	if err != nil {
		log.Fatalw("config", "error", err)
	}

	app := &cli.App{
		Name:  "vault",
		Usage: "Manage files in the local vault store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "Path to the vault store",
				Value: cfg.Store.Path,
			},
		},
		Commands: []*cli.Command{
			uploadCmd,
			listCmd,
			downloadCmd,
			removeCmd,
			mkdirCmd,
			foldersCmd,
			renameFolderCmd,
			removeFolderCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalw("run", "error", err)
	}
}
