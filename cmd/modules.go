package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var modulesProject string

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the Android modules of a project",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		project := openProject(cfg, modulesProject, false)

		modules, err := project.ListModules(context.Background())
		if err != nil {
			logrus.Fatal(err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		for _, m := range modules {
			rel, err := filepath.Rel(project.Root, m.Path)
			if err != nil {
				rel = m.Path
			}
			fmt.Fprintf(tw, "%s\t%s\n", m.Name, rel)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.Flags().StringVarP(&modulesProject, "project", "p", "", "Android project directory (default from config)")
}
