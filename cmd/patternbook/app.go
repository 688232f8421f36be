package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/config"
	"github.com/c360studio/patternbook/content"
	"github.com/c360studio/patternbook/snippet"
)

// appContext holds the flags and lazily built dependencies shared by
// all subcommands.
type appContext struct {
	configPath string
	contentDir string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// setup configures logging and loads configuration. Flag overrides win
// over config file values.
func (a *appContext) setup() error {
	level := parseLogLevel(a.logLevel)
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	var cfg *config.Config
	if a.configPath != "" {
		fileCfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.DefaultConfig()
		cfg.Merge(fileCfg)
	} else {
		loaded, err := config.NewLoader(a.logger).Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if a.contentDir != "" {
		cfg.Content.Dir = a.contentDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	return nil
}

// validator builds the catalog validator with snippet syntax checking.
func (a *appContext) validator() *catalog.Validator {
	v := catalog.NewValidator()
	v.Snippets = snippet.NewChecker()
	return v
}

// buildCatalog loads and finalizes the catalog from the configured
// content directory, falling back to the builtin catalog when no
// directory is configured.
func (a *appContext) buildCatalog() (*catalog.Catalog, *catalog.Report, error) {
	return content.Build(a.cfg.Content.Dir, a.cfg.Content.Globs, a.validator(), a.logger)
}

// requireCatalog builds the catalog and fails on validation errors.
// Warnings are logged but do not block queries.
func (a *appContext) requireCatalog() (*catalog.Catalog, error) {
	c, report, err := a.buildCatalog()
	if err != nil {
		if report != nil {
			fmt.Fprint(os.Stderr, report.Format())
		}
		return nil, err
	}

	for _, w := range report.Warnings {
		a.logger.Warn("catalog warning", slog.String("detail", w.Warning()))
	}

	return c, nil
}
