package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tabula-cli/internal/core/domain"
)

var (
	inspectJSON      bool
	inspectDelimiter string
	inspectEncoding  string
	inspectHeader    string
	inspectMaxRows   int
	inspectWatch     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Analyse a tabular file",
	Long: `Parses a CSV, TXT or JSON file and reports the detected encoding,
delimiter and header row, plus one inferred data type per column with a
confidence score and preview rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output the full parse result as JSON")
	inspectCmd.Flags().StringVarP(&inspectDelimiter, "delimiter", "d", "", "force the field delimiter instead of detecting it")
	inspectCmd.Flags().StringVarP(&inspectEncoding, "encoding", "e", "", "preferred text encoding (utf-8, utf-16le, utf-16be)")
	inspectCmd.Flags().StringVar(&inspectHeader, "header", "auto", "header row handling: auto, true or false")
	inspectCmd.Flags().IntVarP(&inspectMaxRows, "max-rows", "n", 0, "maximum data rows to read (0 = configured default)")
	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "re-analyse whenever the file changes")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	if parseService == nil {
		return errors.New("parse service not configured")
	}

	opts, err := inspectOptions()
	if err != nil {
		return err
	}

	if err := inspectOnce(cmd, path, opts); err != nil {
		return err
	}
	if !inspectWatch {
		return nil
	}
	return watchAndInspect(cmd, path, opts)
}

// inspectOptions folds configuration defaults and command flags into
// parse options. Flags win over configuration.
func inspectOptions() (domain.ParseOptions, error) {
	opts := domain.DefaultParseOptions()

	if configStore != nil {
		if v := configStore.GetInt("parse.max_rows"); v > 0 {
			opts.MaxRows = v
		}
		if v := configStore.GetInt("parse.max_preview_rows"); v > 0 {
			opts.MaxPreviewRows = v
		}
		if v := configStore.GetInt("parse.sample_size"); v > 0 {
			opts.SampleSize = v
		}
		if v := configStore.GetInt("parse.max_file_size"); v > 0 {
			opts.MaxFileSize = v
		}
	}

	opts.Delimiter = inspectDelimiter
	opts.Encoding = inspectEncoding
	if inspectMaxRows > 0 {
		opts.MaxRows = inspectMaxRows
	}

	switch inspectHeader {
	case "", "auto":
	case "true", "yes":
		hasHeader := true
		opts.HasHeader = &hasHeader
	case "false", "no":
		hasHeader := false
		opts.HasHeader = &hasHeader
	default:
		return opts, fmt.Errorf("invalid --header value %q: want auto, true or false", inspectHeader)
	}
	return opts, nil
}

func inspectOnce(cmd *cobra.Command, path string, opts domain.ParseOptions) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	outcome := parseService.Parse(cmd.Context(), content, filepath.Base(path), opts)

	if inspectJSON {
		return outputJSON(cmd, outcome)
	}
	outputOutcome(cmd, path, outcome)
	if !outcome.Success {
		return fmt.Errorf("analysis failed: %s", outcome.Error)
	}
	return nil
}

// watchAndInspect re-runs the analysis whenever the file is rewritten.
// The directory is watched rather than the file itself so editors that
// replace the file atomically keep triggering events.
func watchAndInspect(cmd *cobra.Command, path string, opts domain.ParseOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cmd.Println()
			if err := inspectOnce(cmd, path, opts); err != nil {
				// Keep watching through transient failures (e.g. a
				// half-written file).
				cmd.PrintErrf("Error: %v\n", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", werr)
		}
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputOutcome(cmd *cobra.Command, path string, outcome domain.ParseOutcome) {
	if !outcome.Success {
		cmd.Printf("%s: %s\n", path, outcome.Error)
		return
	}

	cmd.Printf("%s: %d columns, %d rows\n", path, len(outcome.Fields), outcome.RowCount)
	cmd.Printf("  Encoding:  %s", outcome.DetectedEncoding)
	if outcome.HasBOM {
		cmd.Printf(" (BOM)")
	}
	cmd.Println()
	if outcome.DetectedDelimiter != "" {
		cmd.Printf("  Delimiter: %q\n", outcome.DetectedDelimiter)
	}
	if outcome.HasHeader != nil {
		cmd.Printf("  Header:    %t\n", *outcome.HasHeader)
	}
	cmd.Println()

	cmd.Println("Columns:")
	for _, f := range outcome.Fields {
		line := fmt.Sprintf("  %-24s %-10s %3.0f%%", f.Name, f.DataType, f.Confidence*100)
		if f.SampleValue != "" {
			line += fmt.Sprintf("  e.g. %s", f.SampleValue)
		}
		cmd.Println(line)
	}

	if len(outcome.Warnings) > 0 {
		cmd.Println()
		cmd.Println("Warnings:")
		for _, w := range outcome.Warnings {
			cmd.Printf("  - %s\n", w)
		}
	}
}

// readOutcome parses a file with the current options, for commands that
// need the detected schema without printing it.
func readOutcome(ctx context.Context, path string) (*domain.ParseOutcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	opts, err := inspectOptions()
	if err != nil {
		return nil, err
	}
	outcome := parseService.Parse(ctx, content, filepath.Base(path), opts)
	if !outcome.Success {
		return nil, fmt.Errorf("analysis failed: %s", outcome.Error)
	}
	return &outcome, nil
}
