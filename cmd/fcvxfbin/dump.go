package main

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/app"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/config"
)

func newDumpCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <input.xml>",
		Short: "XMLから抽出したタイムラインをYAMLで表示します",
		Args:  exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InputPath = args[0]
			return app.New(cfg).Dump(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
