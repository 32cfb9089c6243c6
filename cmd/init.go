package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/implint/implint"
	tt "github.com/implint/implint/internal/types"
)

// initCmd: implint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = implint.DefaultConfigPath
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = implint.DefaultConfigPath
	}

	config := implint.Config{
		Name:  "implint",
		Rules: map[string]tt.ConfigRule{},
	}
	return implint.WriteConfigurationFile(configurationPath, config)
}
