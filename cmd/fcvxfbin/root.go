package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/app"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/config"
	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
)

// exactlyOneInput は位置引数がちょうど1つであることを確認します
func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s", fcverrors.ErrUsage, cmd.UseLine())
	}
	return nil
}

func newRootCmd() *cobra.Command {
	cfg := config.New("")

	rootCmd := &cobra.Command{
		Use:           "fcvxfbin <input.xml>",
		Short:         "カメラのポストエフェクト設定XMLをfcvカーブのXFBINに変換します",
		Version:       config.Version,
		Args:          exactlyOneInput,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InputPath = args[0]
			application := app.NewWithOptions(cfg, app.Options{
				Output: cmd.OutOrStdout(),
			})
			return application.Run(cmd.Context())
		},
	}
	rootCmd.SetVersionTemplate(`fcvxfbin version {{.Version}}` + "\n")

	rootCmd.PersistentFlags().BoolVarP(&cfg.DebugMode, "debug", "d", false, "enable debug output")
	rootCmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", ".", "output directory for the generated file")
	rootCmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "perform a dry run without writing the output file")
	rootCmd.Flags().BoolVarP(&cfg.Parallel, "parallel", "p", false, "encode curves in parallel")

	rootCmd.AddCommand(newDumpCmd(cfg), newListCmd(cfg))

	return rootCmd
}
