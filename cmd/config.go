package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.GetConfigPath()
		if err != nil {
			logrus.Fatal(err)
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			logrus.Fatalf("Config already exists at %s (use --force to replace it)", path)
		}
		if err := config.CreateDefaultConfig(); err != nil {
			logrus.Fatalf("Failed to write config: %v", err)
		}
		logrus.Infof("Wrote default config to %s", path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.GetConfigPath()
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Replace an existing config file")
}
