package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/content"
	"github.com/c360studio/patternbook/graph"
	"github.com/c360studio/patternbook/ingest"
	"github.com/c360studio/patternbook/server"
)

func ingestCmd(app *appContext) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ingest <url>",
		Short: "Fetch a web page into a draft entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q (want pattern or smell)", category)
			}
			if app.cfg.Content.Dir == "" {
				return fmt.Errorf("ingest needs a content directory (set --content-dir or content.dir)")
			}

			ing := ingest.NewIngester(
				app.cfg.Ingest.Timeout,
				app.cfg.Ingest.UserAgent,
				app.cfg.Ingest.MaxContentSize,
				app.logger,
			)

			draft, err := ing.Ingest(cmd.Context(), args[0], cat, app.cfg.Content.Dir)
			if err != nil {
				return err
			}

			fmt.Printf("draft %s written to %s\n", draft.ID, draft.Path)
			fmt.Println("review the frontmatter, then run validate")
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "pattern", "Category for the draft (pattern or smell)")
	return cmd
}

func serveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(app)
		},
	}
}

func runServe(app *appContext) error {
	c, err := app.requireCatalog()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var nc *nats.Conn
	if app.cfg.NATS.URL != "" {
		nc, err = nats.Connect(app.cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer func() {
			nc.Drain()
			nc.Close()
		}()
	}

	publisher := graph.NewPublisher(nc, app.cfg.NATS.Subject)
	if publisher.Enabled() {
		count, err := publisher.PublishCatalog(c)
		if err != nil {
			return fmt.Errorf("publish catalog: %w", err)
		}
		app.logger.Info("published catalog to graph", slog.Int("entries", count))
	}

	srv := server.New(app.cfg.Server.Addr, server.NewProvider(c), app.logger)

	if app.cfg.Content.Watch && app.cfg.Content.Dir != "" {
		if err := startWatcher(ctx, app, srv, publisher); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startWatcher reloads the catalog when content files change. A reload
// that fails validation keeps the previous snapshot serving.
func startWatcher(ctx context.Context, app *appContext, srv *server.Server, publisher *graph.Publisher) error {
	watchCfg := content.DefaultWatchConfig()
	watchCfg.Enabled = true
	watchCfg.DebounceDelay = app.cfg.Content.DebounceDelay

	w, err := content.NewWatcher(watchCfg, app.cfg.Content.Dir, app.logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case changed := <-w.Reloads():
				app.logger.Info("content changed, reloading catalog",
					slog.Int("files", len(changed)))

				fresh, report, err := app.buildCatalog()
				if err != nil {
					app.logger.Error("reload failed, keeping previous catalog",
						slog.String("error", err.Error()))
					if report != nil {
						fmt.Fprint(os.Stderr, report.Format())
					}
					continue
				}

				srv.SwapCatalog(fresh)
				app.logger.Info("catalog reloaded", slog.Int("entries", fresh.Len()))

				if publisher.Enabled() {
					if count, err := publisher.PublishCatalog(fresh); err != nil {
						app.logger.Error("publish reloaded catalog",
							slog.String("error", err.Error()))
					} else {
						app.logger.Info("published catalog to graph", slog.Int("entries", count))
					}
				}
			}
		}
	}()

	return nil
}
