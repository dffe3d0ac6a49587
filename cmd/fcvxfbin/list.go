package main

import (
	"github.com/spf13/cobra"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/app"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/config"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file.xfbin>",
		Short: "XFBINファイル内のチャンク一覧を表示します",
		Args:  exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(cfg).List(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}
