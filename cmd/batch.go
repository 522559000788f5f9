package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/utils"
)

var (
	batchFile    string
	batchProject string
	batchModule  string
	batchForce   bool
	batchFlags   optionFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Save every icon listed in a file",
	Long: `Read icon names from a file and save them all with the same options.
Names may be separated by newlines, spaces or commas; # starts a comment.
Drawable file names such as ic_settings_rounded_24dp.xml are accepted too.

Examples:
  symbolPicker batch --file icons.txt
  symbolPicker batch --file icons.txt --style outlined --module feature:home`,
	Run: func(cmd *cobra.Command, args []string) {
		if batchFile == "" {
			logrus.Fatal("Name list is required. Use --file flag")
		}
		if _, err := os.Stat(batchFile); os.IsNotExist(err) {
			logrus.Fatalf("Name list does not exist: %s", batchFile)
		}

		names, err := utils.ReadNameList(batchFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if len(names) == 0 {
			logrus.Info("No icon names found")
			return
		}
		logrus.Infof("Found %d icon names to save", len(names))

		cfg := loadConfig()
		saveIcons(cmd, cfg, &batchFlags, names, batchProject, batchModule, batchForce)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "File with icon names")
	batchCmd.Flags().StringVarP(&batchProject, "project", "p", "", "Android project directory (default from config)")
	batchCmd.Flags().StringVarP(&batchModule, "module", "m", "", "Target module, e.g. app or feature:home")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "Overwrite existing drawables")
	batchFlags.register(batchCmd)
}
