package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ospfsdev/ospfs/ospfs"
)

func main() {
	app := &cli.App{
		Name:  "ospfsctl",
		Usage: "format and exercise an in-memory ospfs volume",
		Commands: []*cli.Command{
			{
				Name:   "geometry",
				Usage:  "list the predefined volume geometries",
				Action: listGeometries,
			},
			{
				Name:  "demo",
				Usage: "format a volume and run a scripted create/write/link/symlink/unlink sequence",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "geometry", Value: "small", Usage: "geometry preset slug"},
				},
				Action: runDemoCommand,
			},
			{
				Name:  "fsck",
				Usage: "format a volume, run the demo sequence, and print the resulting inode table as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "geometry", Value: "small", Usage: "geometry preset slug"},
				},
				Action: runFsckCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ospfsctl: %s", err.Error())
	}
}

func listGeometries(ctx *cli.Context) error {
	for slug, preset := range geometryPresets {
		fmt.Printf(
			"%-8s %-28s blocks=%-8d inodes=%-6d  %s\n",
			slug, preset.Name, preset.TotalBlocks, preset.TotalInodes, preset.Notes,
		)
	}
	return nil
}

func formatFromPreset(slug string) (*ospfs.FileSystem, error) {
	preset, err := getGeometryPreset(slug)
	if err != nil {
		return nil, err
	}
	return ospfs.Format(ospfs.FormatOptions{
		TotalBlocks: preset.TotalBlocks,
		TotalInodes: preset.TotalInodes,
	})
}

func runDemoCommand(ctx *cli.Context) error {
	fs, err := formatFromPreset(ctx.String("geometry"))
	if err != nil {
		return err
	}
	return runDemoSequence(fs, os.Stdout)
}

func runFsckCommand(ctx *cli.Context) error {
	fs, err := formatFromPreset(ctx.String("geometry"))
	if err != nil {
		return err
	}
	if err := runDemoSequence(fs, io.Discard); err != nil {
		return err
	}
	return printInodeReport(fs, os.Stdout)
}
