package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/session"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

var (
	catalogFilter string
	catalogCount  bool
	catalogTitles bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the icons available in the catalog",
	Long: `List the icon names of the Material Symbols catalog. The catalog is cached
on disk and reused for up to 30 days.

Examples:
  symbolPicker catalog
  symbolPicker catalog --filter arrow --titles
  symbolPicker catalog --count`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		catalog, _ := newFetchers(cfg)

		names, err := catalog.FetchNames(context.Background())
		if err != nil {
			logrus.Fatalf("Failed to fetch catalog: %v", err)
		}

		icons := session.FilterIcons(symbol.Icons(names), catalogFilter)
		if catalogCount {
			fmt.Println(humanize.Comma(int64(len(icons))))
			return
		}
		for _, icon := range icons {
			if catalogTitles {
				fmt.Printf("%s\t%s\n", icon.Name, icon.Title)
			} else {
				fmt.Println(icon.Name)
			}
		}
		logrus.Debugf("%s of %s icons match", humanize.Comma(int64(len(icons))), humanize.Comma(int64(len(names))))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVarP(&catalogFilter, "filter", "f", "", "Only list icons whose title contains this text")
	catalogCmd.Flags().BoolVar(&catalogCount, "count", false, "Print the number of matching icons")
	catalogCmd.Flags().BoolVar(&catalogTitles, "titles", false, "Print display titles next to names")
}
