package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxz807/bookkeeping/internal/buildinfo"
)

// DefaultConfigPath 未指定 --config 时读取的配置文件，不存在时只用默认值
const DefaultConfigPath = "configs/config.yaml"

// NewRootCommand 根命令，挂载全部子命令
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "bookkeeping",
		Short:   "Double-entry bookkeeping service",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath, "path to config file")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
		newDepreciationCommand(),
		newConfigCommand(),
	)
	return rootCmd
}
