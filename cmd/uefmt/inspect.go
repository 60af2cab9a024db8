package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	ueformat "github.com/logicossoftware/go-ueformat"
)

func inspectCmd() *cli.Command {
	var (
		inPath  string
		verbose bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the header and per-LOD geometry counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "path to .uemodel file",
				Destination: &inPath,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "list color layers, UV channels and morph targets",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model, err := ueformat.DecodeFile(inPath)
			if err != nil {
				return err
			}

			h := model.Header
			fmt.Printf("identifier:  %s\n", h.Identifier)
			fmt.Printf("version:     %d\n", h.Version)
			fmt.Printf("object:      %s\n", h.ObjectName)
			if h.IsCompressed {
				fmt.Printf("compression: %s (%d -> %d bytes)\n",
					h.CompressionType, h.CompressedSize, h.UncompressedSize)
			} else {
				fmt.Printf("compression: none\n")
			}
			fmt.Printf("lods:        %d\n", len(model.LODs))

			for i := range model.LODs {
				lod := &model.LODs[i]
				fmt.Printf("\n[%d] %s\n", i, lod.Name)
				fmt.Printf("  vertices:  %d\n", len(lod.Vertices))
				fmt.Printf("  faces:     %d\n", lod.FaceCount())
				fmt.Printf("  normals:   %d\n", len(lod.Normals))
				fmt.Printf("  materials: %d\n", len(lod.Materials))
				fmt.Printf("  weights:   %d\n", len(lod.Weights))
				if !verbose {
					continue
				}
				for _, c := range lod.VertexColors {
					fmt.Printf("  color layer %q: %d entries\n", c.Name, len(c.Data))
				}
				for j, uv := range lod.TexCoords {
					fmt.Printf("  uv channel %d: %d entries\n", j, len(uv))
				}
				for _, m := range lod.Morphs {
					fmt.Printf("  morph %q: %d deltas\n", m.Name, len(m.Deltas))
				}
			}
			return nil
		},
	}
}
