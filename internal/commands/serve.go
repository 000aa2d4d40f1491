package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			// 建表 + 首次启动写入标准科目
			if _, err := a.migrate(ctx); err != nil {
				return err
			}
			return a.server().Run(ctx)
		},
	}
}
