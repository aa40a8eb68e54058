package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/intecu/filevault/core/storage"
	"github.com/intecu/filevault/core/vault"
)

func openVault(ctx *cli.Context) (*vault.Vault, *storage.Handle, error) {
	h, err := storage.Open(ctx.String("store"))
	if err != nil {
		return nil, nil, err
	}

	v, err := vault.New(h)
	if err != nil {
		h.Close()
		return nil, nil, err
	}

	return v, h, nil
}

var uploadCmd = &cli.Command{
	Name:  "upload",
	Usage: "Store a file in the vault",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file-path",
			Required: true,
			Usage:    "Path to the file you want to store",
		},
		&cli.StringFlag{
			Name:  "folder",
			Usage: "Target folder id",
		},
	},
	Action: func(ctx *cli.Context) error {
		filePath := ctx.String("file-path")

		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		content, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		view, err := v.Ingest(ctx.Context, vault.IngestRequest{
			Name:      filepath.Base(filePath),
			MimeType:  mime.TypeByExtension(filepath.Ext(filePath)),
			SizeBytes: int64(len(content)),
			FolderID:  ctx.String("folder"),
			Payload:   content,
		})
		if err != nil {
			return err
		}

		log.Infow("file stored", "id", view.ID, "type", view.Kind, "size", view.Size)
		return nil
	},
}

var listCmd = &cli.Command{
	Name:  "list",
	Usage: "List stored files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "folder",
			Usage: "Folder id to filter by",
		},
	},
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		views, err := v.Browse(ctx.Context, ctx.String("folder"))
		if err != nil {
			return err
		}

		for _, f := range views {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Kind, f.Size, f.Modified)
		}

		return nil
	},
}

var downloadCmd = &cli.Command{
	Name:  "download",
	Usage: "Write a stored file to disk",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Required: true,
			Usage:    "Id of the file to download",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Output path, defaults to the stored name",
		},
	},
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		view, err := v.Download(ctx.Context, ctx.String("id"))
		if err != nil {
			return err
		}

		out := ctx.String("out")
		if out == "" {
			out = view.Name
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := io.Copy(f, view.Content)
		if err != nil {
			return err
		}

		log.Infow("file downloaded", "id", ctx.String("id"), "path", out, "bytes", n)
		return nil
	},
}

var removeCmd = &cli.Command{
	Name:      "remove",
	Usage:     "Delete stored files by id",
	ArgsUsage: "<id> [<id>...]",
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		result := v.DeleteFiles(ctx.Context, ctx.Args().Slice())
		for _, item := range result.Items {
			if item.Err != nil {
				fmt.Printf("%s\tfailed: %v\n", item.ID, item.Err)
			} else {
				fmt.Printf("%s\tdeleted\n", item.ID)
			}
		}

		if failed := result.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d of %d files not deleted", len(failed), len(result.Items))
		}

		return nil
	},
}

var mkdirCmd = &cli.Command{
	Name:  "mkdir",
	Usage: "Create a folder",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Required: true,
			Usage:    "Display name of the new folder",
		},
	},
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		folder, err := v.CreateFolder(ctx.Context, ctx.String("name"))
		if err != nil {
			return err
		}

		log.Infow("folder created", "id", folder.ID, "name", folder.Name)
		return nil
	},
}

var foldersCmd = &cli.Command{
	Name:  "folders",
	Usage: "List all folders",
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		folders, err := v.Folders(ctx.Context)
		if err != nil {
			return err
		}

		for _, f := range folders {
			fmt.Printf("%s\t%s\n", f.ID, f.Name)
		}

		return nil
	},
}

var renameFolderCmd = &cli.Command{
	Name:  "rename-folder",
	Usage: "Rename a folder",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Required: true,
			Usage:    "Id of the folder to rename",
		},
		&cli.StringFlag{
			Name:     "name",
			Required: true,
			Usage:    "New display name",
		},
	},
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		if err := v.RenameFolder(ctx.Context, ctx.String("id"), ctx.String("name")); err != nil {
			return err
		}

		log.Infow("folder renamed", "id", ctx.String("id"), "name", ctx.String("name"))
		return nil
	},
}

var removeFolderCmd = &cli.Command{
	Name:  "remove-folder",
	Usage: "Delete a folder and the files it contains",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Required: true,
			Usage:    "Id of the folder to remove",
		},
	},
	Action: func(ctx *cli.Context) error {
		v, h, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer h.Close()

		result, err := v.RemoveFolder(ctx.Context, ctx.String("id"))
		for _, item := range result.Items {
			if item.Err != nil {
				fmt.Printf("%s\tfailed: %v\n", item.ID, item.Err)
			} else {
				fmt.Printf("%s\tdeleted\n", item.ID)
			}
		}

		return err
	},
}
