package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	ueformat "github.com/logicossoftware/go-ueformat"
)

func statsCmd() *cli.Command {
	var inPath string

	return &cli.Command{
		Name:  "stats",
		Usage: "Decode a file and report timing and size counters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "path to .uemodel file",
				Destination: &inPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var stats ueformat.Stats
			model, err := ueformat.DecodeFile(inPath, ueformat.WithStats(&stats))
			if err != nil {
				return err
			}

			fmt.Printf("object:             %s\n", model.Header.ObjectName)
			fmt.Printf("read:               %v\n", stats.ReadDuration)
			fmt.Printf("decompress:         %v\n", stats.DecompressDuration)
			fmt.Printf("parse:              %v\n", stats.ParseDuration)
			fmt.Printf("compressed bytes:   %d\n", stats.CompressedBytes)
			fmt.Printf("uncompressed bytes: %d\n", stats.UncompressedBytes)
			fmt.Printf("sections skipped:   %d\n", stats.SectionsSkipped)
			fmt.Printf("chunks skipped:     %d\n", stats.ChunksSkipped)
			return nil
		},
	}
}
