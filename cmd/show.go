package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/render"
	"github.com/Abhimanyu14/material-symbols/symbol"
	"github.com/Abhimanyu14/material-symbols/tui"
	"github.com/Abhimanyu14/material-symbols/utils"
)

var (
	showJSON    bool
	showPreview bool
	showFlags   optionFlags
)

var showCmd = &cobra.Command{
	Use:   "show [icon]",
	Short: "Show URLs and the file name for an icon variant",
	Long:  "Prints the preview URL, drawable URL, preview cache key and drawable file name of an icon with the given options. Nothing is downloaded unless --preview is set.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		opts, err := showFlags.resolve(cmd, cfg)
		if err != nil {
			logrus.Fatal(err)
		}
		icon := symbol.NewIcon(utils.NormalizeIconName(args[0]))
		key := symbol.PreviewKeyFor(icon, opts)

		if showJSON {
			out := struct {
				Name        string `json:"name"`
				Title       string `json:"title"`
				Options     string `json:"options"`
				PreviewURL  string `json:"previewUrl"`
				ResourceURL string `json:"resourceUrl"`
				PreviewKey  string `json:"previewKey"`
				FileName    string `json:"fileName"`
			}{
				Name:        icon.Name,
				Title:       icon.Title,
				Options:     opts.String(),
				PreviewURL:  key.URL(cfg.AssetHost),
				ResourceURL: symbol.ResourceURL(cfg.AssetHost, icon, opts),
				PreviewKey:  key.String(),
				FileName:    symbol.FileName(icon, opts),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				logrus.Fatal(err)
			}
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Name:\t%s\n", icon.Name)
		fmt.Fprintf(tw, "Title:\t%s\n", icon.Title)
		fmt.Fprintf(tw, "Options:\t%s\n", opts)
		fmt.Fprintf(tw, "Preview URL:\t%s\n", key.URL(cfg.AssetHost))
		fmt.Fprintf(tw, "Drawable URL:\t%s\n", symbol.ResourceURL(cfg.AssetHost, icon, opts))
		fmt.Fprintf(tw, "Preview Key:\t%s\n", key)
		fmt.Fprintf(tw, "File Name:\t%s\n", symbol.FileName(icon, opts))
		tw.Flush()

		if showPreview {
			_, assets := newFetchers(cfg)
			previews := render.NewPreviews(cfg.AssetHost, assets)
			defer previews.Close()

			ctx := context.Background()
			svg, err := previews.Source(ctx, key)
			if err != nil {
				logrus.Warnf("Failed to load preview: %v", err)
				return
			}
			img, err := previews.Get(ctx, key, cfg.PreviewPx)
			if err != nil {
				logrus.Warnf("Failed to draw preview: %v", err)
				return
			}
			fmt.Println()
			fmt.Println(tui.RenderPreview(img, tui.DefaultTheme()))
			fmt.Printf("%dpx preview from %s of SVG\n", cfg.PreviewPx, humanize.Bytes(uint64(len(svg))))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showPreview, "preview", false, "Download and draw the preview in the terminal")
	showFlags.register(showCmd)
}
