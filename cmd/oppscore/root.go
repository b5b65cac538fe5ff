package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/johnwards/oppscore/internal/config"
	"github.com/johnwards/oppscore/internal/logging"
)

type contextKey struct{}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "oppscore",
		Short:         "Score sales opportunities and suggest the next best action",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	root.AddCommand(newServeCmd(), newScoreCmd())
	return root
}
