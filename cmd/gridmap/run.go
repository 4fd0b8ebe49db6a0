package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/entrhq/gridmap/pkg/browser"
	"github.com/entrhq/gridmap/pkg/components"
	"github.com/entrhq/gridmap/pkg/config"
	"github.com/entrhq/gridmap/pkg/htmldoc"
	"github.com/entrhq/gridmap/pkg/logging"
	"github.com/entrhq/gridmap/pkg/report"
	"github.com/entrhq/gridmap/pkg/table"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// source is an opened page: a driver over it and a release func.
type source struct {
	name  string
	actor components.Actor
	close func() error
}

// run reads the requested rows and renders them to stdout.
func run(ctx context.Context, cli *CLIConfig, stdout io.Writer) error {
	if cli.Table == "" {
		return errors.New("-table is required")
	}

	format, err := report.ParseFormat(cli.Format)
	if err != nil {
		return err
	}

	appConfig, err := config.Load(cli.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(appConfig.Logging)
	defer logger.Close()

	def, err := appConfig.Table(cli.Table)
	if err != nil {
		return err
	}
	schema, err := def.Schema()
	if err != nil {
		return fmt.Errorf("table %q: %w", cli.Table, err)
	}

	fields, err := schema.Match(splitList(cli.Fields)...)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := openSource(ctx, cli, appConfig, def, logger)
	if err != nil {
		return err
	}
	defer src.close()

	tbl := table.New(schema, src.actor,
		table.WithServices(components.Defaults(src.actor)),
		table.WithLogger(logger),
	)

	rows, err := readRows(tbl, cli, fields)
	if err != nil {
		return err
	}
	logger.Infof("read %d row(s) from table %q at %s", len(rows), cli.Table, src.name)

	rep := report.FromRecords(cli.Table, src.name, fields, rows)

	rd := report.Renderer{Color: cli.Color}
	if err := rd.Render(stdout, rep, format); err != nil {
		return err
	}

	if cli.Copy {
		// Clipboard gets the plain rendering without escape codes
		plain, err := report.Renderer{}.String(rep, format)
		if err != nil {
			return err
		}
		if err := copyToClipboard(plain); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}

	if cli.OutputDir != "" {
		paths, err := report.NewArtifactWriter(cli.OutputDir).WriteAll(rep)
		if err != nil {
			return err
		}
		logger.Infof("wrote artifacts: %s", strings.Join(paths, ", "))
	}
	return nil
}

// readRows dispatches to the read operation the flags select.
func readRows(tbl *table.Table[table.Record], cli *CLIConfig, fields []string) ([]*table.Record, error) {
	switch {
	case cli.Row >= 0:
		row, err := tbl.ReadRow(table.Index(cli.Row), fields...)
		if err != nil {
			return nil, err
		}
		return []*table.Record{row}, nil
	case cli.Match != "":
		row, err := tbl.ReadRow(table.Matching(splitList(cli.Match)...), fields...)
		if err != nil {
			return nil, err
		}
		return []*table.Record{row}, nil
	case cli.Start != 0 || cli.End != 0:
		end := cli.End
		if end == 0 {
			// Open ended range
			end = int(^uint(0) >> 1)
		}
		return tbl.ReadRange(cli.Start, end, fields...)
	default:
		return tbl.ReadTable(fields...)
	}
}

func openSource(ctx context.Context, cli *CLIConfig, appConfig *config.Config, def config.TableDef, logger *logging.Logger) (*source, error) {
	if cli.File != "" {
		doc, err := htmldoc.Load(cli.File)
		if err != nil {
			return nil, err
		}
		return &source{name: cli.File, actor: doc, close: func() error { return nil }}, nil
	}

	url := cli.URL
	if url == "" {
		url = def.URL
	}
	if url == "" {
		return nil, fmt.Errorf("table %q has no url: pass -url or -file", cli.Table)
	}

	manager := browser.NewSessionManager()
	manager.SetLogger(logger)
	manager.SetMaxSessions(appConfig.Browser.MaxSessions)
	manager.SetIdleTimeout(appConfig.Browser.IdleTimeout)
	if err := manager.Initialize(); err != nil {
		return nil, err
	}

	opts := appConfig.Browser.SessionOptions()
	opts.Headless = cli.Headless
	if cli.Timeout > 0 {
		opts.Timeout = float64(cli.Timeout.Milliseconds())
	}

	session, err := manager.StartSession(cli.Table, opts)
	if err != nil {
		manager.Shutdown()
		return nil, err
	}

	// Release the browser if the run is cancelled mid-flight
	stop := context.AfterFunc(ctx, func() { _ = manager.Shutdown() })
	reapCtx, stopReaping := context.WithCancel(ctx)
	if idle := appConfig.Browser.IdleTimeout; idle > 0 {
		go manager.ReapIdle(reapCtx, idle/2)
	}
	release := func() error {
		stopReaping()
		stop()
		return manager.Shutdown()
	}

	if err := session.Navigate(url, browser.NavigateOptions{WaitUntil: "load"}); err != nil {
		release()
		return nil, err
	}
	if cli.Wait != "" {
		if err := session.Wait(browser.WaitOptions{Selector: cli.Wait, State: "visible"}); err != nil {
			release()
			return nil, err
		}
	}
	if cli.Snapshot != "" {
		if err := saveSnapshot(session, cli.Snapshot); err != nil {
			release()
			return nil, err
		}
		logger.Infof("saved snapshot of %s to %s", url, cli.Snapshot)
	}

	return &source{name: session.Metadata().String(), actor: session.Driver(), close: release}, nil
}

func saveSnapshot(session *browser.Session, path string) error {
	content, err := session.Content()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) *logging.Logger {
	switch {
	case cfg.File:
		// Falls back to stderr when the log file cannot be opened
		l, _ := logging.NewLogger("gridmap")
		return l
	case cfg.Debug:
		return logging.New("gridmap", os.Stderr)
	default:
		return logging.Discard("gridmap")
	}
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
