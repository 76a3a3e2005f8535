package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfw/internal/logger"
	"github.com/Faultbox/gltfw/pkg/gltf"
	"github.com/Faultbox/gltfw/pkg/scenefile"
)

func newEncodeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode <scene.yaml>",
		Short: "Write a scene description as a glTF document",
		Long: `encode loads a scene description and writes the glTF document to the
output file, or to stdout when the output is "-". A file is replaced only
once the complete document has been produced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.encode(cmd.OutOrStdout(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, or - for stdout")
	return cmd
}

func (a *app) encode(stdout io.Writer, input, output string) error {
	start := time.Now()

	m, err := scenefile.Load(input)
	if err != nil {
		return err
	}
	scenefile.ApplyDefaults(m, a.cfg.Asset.Generator, a.cfg.Asset.Copyright)

	enc := gltf.Encoder{Indent: a.cfg.IndentString()}
	if output == "-" {
		err = enc.Write(stdout, m)
	} else {
		err = enc.WriteFile(output, m)
	}
	if err != nil {
		return err
	}

	var payload int
	for _, b := range m.Buffers {
		payload += len(b.Data)
	}
	logger.Info("document written",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("buffers", len(m.Buffers)),
		zap.Int("bufferBytes", payload),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
