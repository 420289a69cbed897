package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/output"
)

// watchDebounce coalesces the bursts of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	var (
		watch   bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Resolve one expression per line",
		Long: `Resolve every line of a file (or stdin) as a date-period expression.

Blank lines and lines starting with # are skipped. Results keep input order.
With --watch, the file is resolved again each time it changes.

Examples:
  dateperiod batch phrases.txt
  cat phrases.txt | dateperiod batch --ref 2016-11-07
  dateperiod batch phrases.txt --watch --md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			if watch && path == "-" {
				return output.ErrUsageHint("--watch needs a file", "Example: dateperiod batch phrases.txt --watch")
			}

			if !cmd.Flags().Changed("workers") {
				workers = app.Config.Workers
			}
			if workers < 1 {
				return output.ErrUsage("--workers must be at least 1")
			}

			ref, err := app.ReferenceTime()
			if err != nil {
				return err
			}

			run := func(ctx context.Context) error {
				lines, err := readLines(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				periods, err := ResolveAll(ctx, app, lines, ref, workers)
				if err != nil {
					return err
				}
				return app.OK(periods,
					output.WithSummary(batchSummary(periods)),
					output.WithContext("source", path),
					output.WithContext("reference", ref.Format(time.DateOnly)),
					output.WithContext("locale", app.LocaleTag()),
				)
			}

			if !watch {
				return run(cmd.Context())
			}
			return watchFile(cmd.Context(), app, path, run)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Resolve again whenever the file changes")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent resolvers (default from config)")

	return cmd
}

// ResolveAll resolves lines concurrently on at most workers goroutines.
// Results keep the order of lines.
func ResolveAll(ctx context.Context, app *appctx.App, lines []string, ref time.Time, workers int) ([]Period, error) {
	out := make([]Period, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pp, err := app.Resolve(line, ref)
			if err != nil {
				return err
			}
			out[i] = NewPeriod(pp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readLines(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // G304: Path is the user's own input file
		if err != nil {
			return nil, output.ErrUsage(fmt.Sprintf("Cannot read %s: %v", path, err))
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func batchSummary(periods []Period) string {
	resolved := 0
	for _, p := range periods {
		if p.Resolved {
			resolved++
		}
	}
	return fmt.Sprintf("%d of %d resolved", resolved, len(periods))
}

// watchFile runs once, then again after each change to path until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are still seen.
func watchFile(ctx context.Context, app *appctx.App, path string, run func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	if err := run(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			app.Logger.Debug("input changed", "path", path, "op", ev.Op.String())
			timer.Reset(watchDebounce)

		case <-timer.C:
			// Errors are reported and watching continues
			if err := run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if outErr := app.Err(err); outErr != nil {
					return outErr
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.Logger.Debug("watch error", "path", path, "error", err)
		}
	}
}
