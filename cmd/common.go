package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Abhimanyu14/material-symbols/android"
	"github.com/Abhimanyu14/material-symbols/config"
	"github.com/Abhimanyu14/material-symbols/fetcher"
	"github.com/Abhimanyu14/material-symbols/session"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

// optionFlags are the render option overrides shared by show, fetch and batch.
// Unset flags fall back to the configured defaults.
type optionFlags struct {
	style  string
	weight string
	grade  string
	size   string
	filled bool
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "", "Icon style: outlined, rounded or sharp")
	cmd.Flags().StringVar(&f.weight, "weight", "", "Stroke weight: 100 to 700")
	cmd.Flags().StringVar(&f.grade, "grade", "", "Grade: -25, 0 or 200")
	cmd.Flags().StringVar(&f.size, "size", "", "Optical size in dp: 20, 24, 40 or 48")
	cmd.Flags().BoolVar(&f.filled, "filled", false, "Use the filled variant")
}

func (f *optionFlags) resolve(cmd *cobra.Command, cfg *config.Config) (symbol.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return opts, err
	}
	flags := cmd.Flags()
	if flags.Changed("style") {
		s, err := symbol.ParseStyle(f.style)
		if err != nil {
			return opts, err
		}
		opts = opts.WithStyle(s)
	}
	if flags.Changed("weight") {
		w, err := symbol.ParseWeight(f.weight)
		if err != nil {
			return opts, err
		}
		opts = opts.WithWeight(w)
	}
	if flags.Changed("grade") {
		g, err := symbol.ParseGrade(f.grade)
		if err != nil {
			return opts, err
		}
		opts = opts.WithGrade(g)
	}
	if flags.Changed("size") {
		s, err := symbol.ParseSize(f.size)
		if err != nil {
			return opts, err
		}
		opts = opts.WithSize(s)
	}
	if flags.Changed("filled") {
		opts = opts.WithFilled(f.filled)
	}
	return opts, nil
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Debugf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if err := config.ValidateConfig(cfg); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}
	return cfg
}

// newFetchers returns the catalog fetcher, backed by the disk cache when
// possible, and the asset fetcher.
func newFetchers(cfg *config.Config) (*fetcher.Catalog, *fetcher.Assets) {
	client := fetcher.NewClient(cfg.Timeout())

	cacheDir, err := cfg.ResolvedCacheDir()
	if err != nil {
		logrus.Warnf("HTTP cache disabled: %v", err)
	}
	catalogClient, err := fetcher.NewCachingClient(cacheDir, cfg.Timeout())
	if err != nil {
		logrus.Warnf("HTTP cache disabled: %v", err)
		catalogClient = client
	}

	return fetcher.NewCatalog(catalogClient, cfg.CatalogURL, cfg.TargetFamily), fetcher.NewAssets(client)
}

func openProject(cfg *config.Config, dir string, overwrite bool) *android.Project {
	if dir == "" {
		dir = cfg.ProjectDir
	}
	project, err := android.Open(dir)
	if err != nil {
		logrus.Fatal(err)
	}
	project.Editor = cfg.Editor
	project.Overwrite = overwrite || cfg.Overwrite
	return project
}

func newSession(ctx context.Context, cfg *config.Config, host session.Host, opts symbol.Options, dispatch func(func())) *session.Session {
	catalog, assets := newFetchers(cfg)
	return session.New(ctx, session.Config{
		AssetHost: cfg.AssetHost,
		Workers:   cfg.Workers,
		Options:   opts,
		Dispatch:  dispatch,
	}, session.Deps{
		Host:    host,
		Catalog: catalog,
		SVG:     assets,
		Text:    assets,
	})
}

// selectByName selects names in s, failing on names missing from the catalog.
func selectByName(s *session.Session, names []string) error {
	known := make(map[string]symbol.Icon, s.State().CatalogSize())
	for _, icon := range s.State().Catalog() {
		known[icon.Key()] = icon
	}
	var missing []string
	for _, name := range names {
		icon, ok := known[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		s.State().ToggleSelect(icon, true)
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown icons: %v", missing)
	}
	return nil
}
