package main

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfw/internal/logger"
	"github.com/Faultbox/gltfw/pkg/gltf"
	"github.com/Faultbox/gltfw/pkg/scenefile"
)

func newInspectCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <scene.yaml>",
		Short: "Summarize a scene description",
		Long: `inspect prints entity counts, buffer sizes and accessor layouts of a scene
description. Suspicious but encodable values are reported as warnings;
they do not stop encode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if dump {
				fmt.Fprintf(w, "%# v\n", pretty.Formatter(m))
				return nil
			}
			printSummary(w, m)
			warnSuspicious(m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the loaded model structure")
	return cmd
}

func printSummary(w io.Writer, m *gltf.Model) {
	var payload int
	for _, b := range m.Buffers {
		payload += len(b.Data)
	}

	defaultScene := "none"
	if m.DefaultScene != nil {
		defaultScene = fmt.Sprint(*m.DefaultScene)
	}

	fmt.Fprintf(w, "Scenes:      %d (default: %s)\n", len(m.Scenes), defaultScene)
	fmt.Fprintf(w, "Nodes:       %d\n", len(m.Nodes))
	fmt.Fprintf(w, "Meshes:      %d\n", len(m.Meshes))
	fmt.Fprintf(w, "Buffers:     %d (%d bytes)\n", len(m.Buffers), payload)
	fmt.Fprintf(w, "BufferViews: %d\n", len(m.BufferViews))
	fmt.Fprintf(w, "Accessors:   %d\n", len(m.Accessors))

	for i, s := range m.Scenes {
		fmt.Fprintf(w, "  scene %d: %q nodes=%v\n", i, s.Name, s.Nodes)
	}
	for i, b := range m.Buffers {
		fmt.Fprintf(w, "  buffer %d: %d bytes\n", i, len(b.Data))
	}
	for i, v := range m.BufferViews {
		fmt.Fprintf(w, "  bufferView %d: buffer %d [%d:%d] %s\n",
			i, v.Buffer, v.ByteOffset, v.ByteOffset+v.ByteLength, v.Target)
	}
	for i, acc := range m.Accessors {
		fmt.Fprintf(w, "  accessor %d: %s %s x%d (bufferView %d, offset %d)\n",
			i, acc.Type, acc.ComponentType, acc.Count, acc.BufferView, acc.ByteOffset)
	}
}

// warnSuspicious logs values the encoder writes verbatim but most glTF
// consumers reject.
func warnSuspicious(m *gltf.Model) {
	if m.DefaultScene != nil && *m.DefaultScene >= len(m.Scenes) {
		logger.Warn("default scene out of range",
			zap.Int("scene", *m.DefaultScene),
			zap.Int("scenes", len(m.Scenes)))
	}

	for i, v := range m.BufferViews {
		if v.Buffer >= 0 && v.Buffer < len(m.Buffers) && v.ByteOffset+v.ByteLength > len(m.Buffers[v.Buffer].Data) {
			logger.Warn("buffer view exceeds buffer",
				zap.Int("bufferView", i),
				zap.Int("end", v.ByteOffset+v.ByteLength),
				zap.Int("bufferLength", len(m.Buffers[v.Buffer].Data)))
		}
	}

	for i, acc := range m.Accessors {
		width := acc.Type.Components()
		if width == 0 {
			logger.Warn("non-standard accessor type", zap.Int("accessor", i), zap.Stringer("type", acc.Type))
			continue
		}
		if len(acc.Min) != width || len(acc.Max) != width {
			logger.Sugar.Warnf("accessor %d: min has %d values and max has %d, %s expects %d",
				i, len(acc.Min), len(acc.Max), acc.Type, width)
		}
	}
}
