package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"vidmeta/internal/modules/analytics"
	"vidmeta/internal/modules/clipboard"
	"vidmeta/internal/modules/config"
	"vidmeta/internal/modules/export"
	"vidmeta/internal/modules/fetcher"
	"vidmeta/internal/modules/history"
	"vidmeta/internal/modules/render"
	"vidmeta/internal/modules/storage"
	"vidmeta/internal/modules/watchurl"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	batchMode     bool
	exportFormat  string
	copyOutput    bool
	themeName     string
	liveCountdown bool
	showHistory   bool
	showStats     bool
	clearHistory  bool
)

var rootCmd = &cobra.Command{
	Use:   "vidmeta [identifier | watch URL | id1,id2,...]",
	Short: "Look up media title metadata by identifier",
	Long: `A terminal client for a media metadata endpoint. Searches a title by its
numeric identifier (or a shareable watch URL), keeps a local search history
and latency analytics, and can compare up to four titles side by side.`,
	Args: cobra.MaximumNArgs(1),
}

// Execute wires the context and logger into the root command and runs it.
func Execute(ctx context.Context, logger *zap.Logger) {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(ctx, cmd, args, logger)
	}
	if err := rootCmd.Execute(); err != nil {
		logger.Error("execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&batchMode, "batch", "b", false, "Treat the argument as a comma-separated batch (max 4) and compare")
	rootCmd.Flags().StringVarP(&exportFormat, "export", "e", "", "Export the result instead of the card: markdown or json")
	rootCmd.Flags().BoolVarP(&copyOutput, "copy", "c", false, "Copy the export text (or share URL) to the clipboard")
	rootCmd.Flags().StringVarP(&themeName, "theme", "t", "", "Set and persist the color theme: dark, light or mono")
	rootCmd.Flags().BoolVar(&liveCountdown, "countdown", false, "Tick down live until an upcoming title becomes available")
	rootCmd.Flags().BoolVar(&showHistory, "history", false, "Show prior searches (argument filters them)")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "Show search analytics and rate-limit state")
	rootCmd.Flags().BoolVar(&clearHistory, "clear-history", false, "Forget all prior searches")
	pflag.CommandLine.AddFlagSet(rootCmd.Flags())
}

func run(ctx context.Context, cmd *cobra.Command, args []string, logger *zap.Logger) error {
	cfg := config.Load(logger)
	state := storage.New(cfg.DataDir, logger)

	if themeName != "" && !render.SaveTheme(state, themeName) {
		logger.Warn("unknown theme, keeping previous preference", zap.String("theme", themeName))
	}
	out := cmd.OutOrStdout()
	renderer := render.New(out, render.LoadTheme(state), logger)

	hist := history.New(state, logger)
	stats := analytics.New(state, logger)
	fetch := fetcher.New(cfg.APIURL, cfg.APIKey, cfg.Timeout, hist, stats, logger)

	switch {
	case clearHistory:
		hist.Clear()
		fmt.Fprintln(out, "Search history cleared.")
		return nil
	case showHistory:
		renderer.History(hist.Filter(argOrEmpty(args)))
		return nil
	case showStats:
		rate, known := fetch.RateLimit()
		renderer.Stats(stats.Snapshot(), rate, known)
		return nil
	}

	ids := resolveIdentifiers(args, state)
	if len(ids) == 0 {
		return fmt.Errorf("nothing to search: pass an identifier, a watch URL, or run a search first")
	}

	if len(ids) > 1 || batchMode {
		return runBatch(ctx, fetch, renderer, ids)
	}
	return runSingle(ctx, cfg, state, fetch, renderer, logger, ids[0])
}

func runSingle(ctx context.Context, cfg config.Config, state *storage.Store, fetch *fetcher.Fetcher, renderer *render.Renderer, logger *zap.Logger, id string) error {
	result, err := fetch.Search(ctx, id)
	if errors.Is(err, fetcher.ErrStale) {
		return nil
	}
	if err != nil {
		renderer.Error(err.Error())
		return err
	}

	entity := result.Entities[0]
	storage.Write(state, watchurl.StorageKey, entity.VideoID)
	shareURL := watchurl.Set(cfg.ShareURL, entity.VideoID)

	if exportFormat != "" {
		text, err := export.Render(entity, export.Format(exportFormat))
		if err != nil {
			return err
		}
		fmt.Fprint(renderer.Out(), text)
		copyText(text, logger)
		return nil
	}

	renderer.Entity(entity)
	if liveCountdown {
		renderer.Countdown(ctx, render.Countdown{Until: entity.AvailableFrom}, time.Second)
	}
	renderer.Footer(result.Elapsed, shareURL)
	copyText(shareURL, logger)
	return nil
}

func runBatch(ctx context.Context, fetch *fetcher.Fetcher, renderer *render.Renderer, ids []string) error {
	result, err := fetch.SearchBatch(ctx, ids)
	if errors.Is(err, fetcher.ErrStale) {
		return nil
	}
	if err != nil {
		renderer.Error(err.Error())
		return err
	}

	renderer.Comparison(result.Entities)
	renderer.Footer(result.Elapsed, "")
	return nil
}

// resolveIdentifiers turns the positional argument into identifiers: watch
// URLs lose everything but their v parameter, comma lists fan out, and with no
// argument the previous search reloads.
func resolveIdentifiers(args []string, state *storage.Store) []string {
	input := argOrEmpty(args)
	if input == "" {
		input = storage.Read(state, watchurl.StorageKey, "")
	}

	var ids []string
	for _, part := range strings.Split(input, ",") {
		if id := watchurl.Extract(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func copyText(text string, logger *zap.Logger) {
	if !copyOutput {
		return
	}
	if err := clipboard.Copy(text); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	}
}
