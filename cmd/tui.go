package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/tui"
)

var (
	browseProject string
	browseModule  string
	browseForce   bool
)

var tuiCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive icon picker",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		opts, err := cfg.Options()
		if err != nil {
			logrus.Fatal(err)
		}
		project := openProject(cfg, browseProject, browseForce)
		if browseModule == "" {
			browseModule = cfg.DefaultModule
		}

		catalog, assets := newFetchers(cfg)
		err = tui.Run(tui.Options{
			Config:   cfg,
			Project:  project,
			Module:   browseModule,
			Defaults: opts,
			Catalog:  catalog,
			Assets:   assets,
		})
		if err != nil {
			logrus.Fatalf("TUI exited with error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&browseProject, "project", "p", "", "Android project directory (default from config)")
	tuiCmd.Flags().StringVarP(&browseModule, "module", "m", "", "Preselected target module")
	tuiCmd.Flags().BoolVar(&browseForce, "force", false, "Overwrite existing drawables")
}
