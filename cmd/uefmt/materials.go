package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	ueformat "github.com/logicossoftware/go-ueformat"
)

func materialsCmd() *cli.Command {
	var (
		inPath string
		lodIdx int
	)

	return &cli.Command{
		Name:  "materials",
		Usage: "Print the material face-range table of one LOD",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "in",
				Aliases:     []string{"i"},
				Usage:       "path to .uemodel file",
				Destination: &inPath,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "lod",
				Usage:       "LOD index",
				Destination: &lodIdx,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model, err := ueformat.DecodeFile(inPath)
			if err != nil {
				return err
			}
			if lodIdx < 0 || lodIdx >= len(model.LODs) {
				return fmt.Errorf("lod %d out of range, file has %d", lodIdx, len(model.LODs))
			}
			lod := &model.LODs[lodIdx]

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tNAME\tFIRST\tFACES\tLAST")
			faces := lod.FaceCount()
			for i, m := range lod.Materials {
				last := faces - 1
				if i+1 < len(lod.Materials) {
					last = int(lod.Materials[i+1].FirstIndex) - 1
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i, m.Name, m.FirstIndex, m.NumFaces, last)
			}
			return w.Flush()
		},
	}
}
