package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mykola-Oleh/CellCalculator/internal/document"
	"github.com/Mykola-Oleh/CellCalculator/internal/engine"
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
	"github.com/Mykola-Oleh/CellCalculator/internal/store"
)

// newLogger writes engine logs to w: Debug under --verbose, Info otherwise.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newFormatter builds the formatter every command writes through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens the database at path, mapping failures to exit code 2.
func openStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// newEngine builds an engine logging to the command's stderr. With a store,
// the pass counter resumes after the last recorded seq.
func newEngine(ctx context.Context, opts *RootOptions, cmd *cobra.Command, st *store.Store, gen engine.PassIDGenerator) (*engine.Engine, error) {
	engOpts := []engine.EngineOption{
		engine.WithLogger(newLogger(opts, cmd.ErrOrStderr())),
		engine.WithPassIDGenerator(gen),
	}
	if st != nil {
		last, err := st.LastPassSeq(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read pass log", err)
		}
		engOpts = append(engOpts, engine.WithClock(engine.NewClockAt(last)))
	}
	return engine.New(engOpts...), nil
}

// loadSheetFile reads a sheet document, mapping failures to exit code 2.
func loadSheetFile(path string) (*sheet.Grid, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, "sheet file not found: "+path)
	}
	g, err := document.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load sheet", err)
	}
	return g, nil
}

// recordPass saves the sheet and appends the pass to the log.
func recordPass(ctx context.Context, st *store.Store, name string, r *engine.Report, g *sheet.Grid) error {
	if err := st.SaveSheet(ctx, name, g); err != nil {
		return WrapExitError(ExitCommandError, "failed to save sheet", err)
	}
	pass, err := store.PassFromReport(name, r, g)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build pass record", err)
	}
	if err := st.RecordPass(ctx, pass); err != nil {
		return WrapExitError(ExitCommandError, "failed to record pass", err)
	}
	return nil
}
