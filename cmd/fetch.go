package cmd

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/config"
	"github.com/Abhimanyu14/material-symbols/utils"
)

var (
	fetchProject string
	fetchModule  string
	fetchForce   bool
	fetchFlags   optionFlags
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [icon...]",
	Short: "Download icons as vector drawables into an Android module",
	Long: `Download one or more icons with the given options and save them into
src/main/res/drawable of an Android module. Either every icon is saved or none.

Examples:
  symbolPicker fetch settings search
  symbolPicker fetch 10k --weight 700 --filled --module app
  symbolPicker fetch home --style sharp --project ~/src/myapp --force`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		names := make([]string, 0, len(args))
		for _, arg := range args {
			names = append(names, utils.NormalizeIconName(arg))
		}
		saveIcons(cmd, cfg, &fetchFlags, names, fetchProject, fetchModule, fetchForce)
	},
}

// saveIcons runs the picker session non-interactively: load the catalog,
// select names and confirm into the module.
func saveIcons(cmd *cobra.Command, cfg *config.Config, flags *optionFlags, names []string, projectDir, moduleName string, overwrite bool) {
	opts, err := flags.resolve(cmd, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	if moduleName == "" {
		moduleName = cfg.DefaultModule
	}

	ctx := context.Background()
	project := openProject(cfg, projectDir, overwrite)
	module, err := project.FindModule(ctx, moduleName)
	if err != nil {
		logrus.Fatal(err)
	}

	s := newSession(ctx, cfg, project, opts, nil)
	defer s.Dispose()

	if err := s.LoadCatalog(ctx); err != nil {
		logrus.Fatal(err)
	}
	if err := selectByName(s, names); err != nil {
		logrus.Fatal(err)
	}

	logrus.Infof("Saving %d icons (%s) into %s", len(names), opts, module.Name)
	files, err := s.Confirm(ctx, module)
	if err != nil {
		logrus.Fatal(err)
	}

	var total uint64
	for _, f := range files {
		total += uint64(f.Size)
		rel, err := filepath.Rel(project.Root, f.Path)
		if err != nil {
			rel = f.Path
		}
		logrus.Infof("Saved %s (%s)", rel, humanize.Bytes(uint64(f.Size)))
	}
	logrus.Infof("Successfully saved %d drawables, %s total", len(files), humanize.Bytes(total))
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchProject, "project", "p", "", "Android project directory (default from config)")
	fetchCmd.Flags().StringVarP(&fetchModule, "module", "m", "", "Target module, e.g. app or feature:home")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "Overwrite existing drawables")
	fetchFlags.register(fetchCmd)
}
