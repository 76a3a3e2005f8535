package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfw/internal/config"
	"github.com/Faultbox/gltfw/internal/logger"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "gltftool",
		Short: "gltftool writes scene descriptions as embedded glTF 2.0 documents.",
		Long: `gltftool reads YAML scene descriptions and writes glTF 2.0 JSON documents
in which every buffer is embedded as a base64 data URI.

Examples:
  gltftool encode scene.yaml -o scene.gltf
  gltftool encode --pretty scene.yaml
  gltftool inspect scene.yaml
  gltftool config init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return err
			}
			logger.Debug("configuration loaded",
				zap.String("command", cmd.Name()),
				zap.Bool("pretty", cfg.Output.Pretty),
				zap.String("generator", cfg.Asset.Generator),
			)
			a.cfg = cfg
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newEncodeCmd(a),
		newInspectCmd(),
		newConfigCmd(a),
	)
	return cmd
}
