// Package cmd wires the command line interface. The root command runs the
// full normalization pipeline: scan, classify, enrich, plan, review, execute.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Digital-Shane/library-tidy/internal/config"
	"github.com/Digital-Shane/library-tidy/internal/core"
	"github.com/Digital-Shane/library-tidy/internal/log"
	"github.com/Digital-Shane/library-tidy/internal/media"
	"github.com/Digital-Shane/library-tidy/internal/plan"
	"github.com/Digital-Shane/library-tidy/internal/provider"
	"github.com/Digital-Shane/library-tidy/internal/scan"
	"github.com/Digital-Shane/library-tidy/internal/tui"
	"github.com/Digital-Shane/library-tidy/internal/tui/theme"
	"github.com/Digital-Shane/library-tidy/internal/verify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	dryRun       bool
	instantMode  bool
	copyMode     bool
	verifyCopies bool
	destDir      string
	maxDepth     int
)

var rootCmd = &cobra.Command{
	Use:   "library-tidy [directory]",
	Short: "Normalize media filenames into a clean library layout",
	Long: `library-tidy scans a directory for TV episodes and movies, derives
their canonical names from the messy release filenames, and moves each file
into a media-server friendly layout:

  Shows/<Show>/Season <NN>/<Show> - s<NN>e<NN> - <Title>.<ext>
  Movies/<Title> (<Year>)/<Title> (<Year>).<ext>

Nothing is moved until the plan is reviewed and confirmed, and every
operation is journaled so a run can be undone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the plan without moving anything")
	rootCmd.Flags().BoolVarP(&instantMode, "instant", "i", false, "apply the plan without the interactive preview")
	rootCmd.Flags().BoolVar(&copyMode, "copy", false, "copy files into place instead of moving them")
	rootCmd.Flags().BoolVar(&verifyCopies, "verify", false, "probe copied files with ffprobe before committing")
	rootCmd.Flags().StringVarP(&destDir, "dest", "d", "", "destination library root (defaults to the scanned directory)")
	rootCmd.Flags().IntVar(&maxDepth, "depth", 0, "limit directory descent (0 = unlimited)")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	srcRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	if info, err := os.Stat(srcRoot); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", srcRoot)
	}

	destRoot := srcRoot
	if destDir != "" {
		if destRoot, err = filepath.Abs(destDir); err != nil {
			return fmt.Errorf("resolve destination: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log.Initialize(cfg.EnableLogging && !dryRun, cfg.LogRetentionDays)
	if !dryRun {
		if err := log.StartSession("organize", os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: operation logging unavailable: %v\n", err)
		}
		defer func() {
			if err := log.EndSession(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save operation log: %v\n", err)
			}
		}()
	}

	files, err := scan.Scan(ctx, srcRoot, scan.Options{
		MaxDepth:        maxDepth,
		ExtraExtensions: cfg.ExtraExtensions,
		ExcludeDirs:     libraryExcludes(cfg, srcRoot, destRoot),
	})
	if err != nil {
		return err
	}

	items := classifyAll(files)

	if cfg.LookupEnabled() {
		enrich(ctx, cfg, items)
	}

	plans := plan.NewBuilder(cfg, srcRoot, destRoot).BuildAll(items)

	if dryRun {
		printPlans(plans)
		report := plan.NewReport(plans, nil)
		report.Render(os.Stdout)
		return nil
	}

	execute := makeExecutor(ctx)

	var outcomes []plan.Outcome
	if instantMode {
		outcomes = executeAll(plans, execute)
	} else {
		model := tui.NewPreviewModel(plans, execute, theme.Default())
		program := tea.NewProgram(model, tea.WithContext(ctx))
		final, err := program.Run()
		if err != nil {
			return fmt.Errorf("interactive preview: %w", err)
		}
		preview, ok := final.(*tui.PreviewModel)
		if !ok || preview.Aborted() {
			fmt.Println("Aborted, nothing was moved.")
			return nil
		}
		outcomes = preview.Outcomes()
	}

	report := plan.NewReport(plans, outcomes)
	report.Render(os.Stdout)
	return nil
}

// libraryExcludes keeps an in-tree destination library out of its own scan,
// so a second run over the same directory is a no-op rather than a rescan of
// everything already organized.
func libraryExcludes(cfg *config.LibraryConfig, srcRoot, destRoot string) []string {
	if destRoot != srcRoot && !strings.HasPrefix(destRoot, srcRoot+string(filepath.Separator)) {
		return nil
	}
	return []string{cfg.ShowsDir, cfg.MoviesDir, cfg.MusicDir}
}

func classifyAll(files []media.MediaFile) []plan.Item {
	items := make([]plan.Item, 0, len(files))
	for _, f := range files {
		class, err := media.Classify(f)
		items = append(items, plan.Item{File: f, Class: class, Err: err})
	}
	return items
}

// enrich fills missing episode titles from the configured providers. Lookup
// failures degrade to warnings: the parsed name still produces a valid, if
// sparser, target.
func enrich(ctx context.Context, cfg *config.LibraryConfig, items []plan.Item) {
	var providers []provider.MetadataProvider
	if cfg.EnableTMDBLookup && cfg.TMDBAPIKey != "" {
		p, err := provider.NewTMDBProvider(cfg.TMDBAPIKey, cfg.TMDBLanguage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: TMDB lookup disabled: %v\n", err)
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.EnableOMDBLookup && cfg.OMDBAPIKey != "" {
		p, err := provider.NewOMDBProvider(cfg.OMDBAPIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: OMDb lookup disabled: %v\n", err)
		} else {
			providers = append(providers, p)
		}
	}
	if len(providers) == 0 {
		return
	}

	classes := make([]*media.Classification, 0, len(items))
	for _, item := range items {
		if item.Err == nil {
			classes = append(classes, item.Class)
		}
	}

	enricher := provider.NewEnricher(cfg.LookupWorkers, providers...)
	enricher.EnrichAll(ctx, classes)
	for _, err := range enricher.Errors() {
		fmt.Fprintf(os.Stderr, "Warning: metadata lookup: %v\n", err)
	}
}

func makeExecutor(ctx context.Context) tui.ExecuteFunc {
	opts := core.MoveOptions{Copy: copyMode}
	if verifyCopies {
		opts.Probe = verify.Probe
	}
	return func(p plan.Plan) error {
		return core.MoveFile(ctx, p.Source, p.Target, opts)
	}
}

func executeAll(plans []plan.Plan, execute tui.ExecuteFunc) []plan.Outcome {
	var outcomes []plan.Outcome
	for _, p := range plans {
		if p.Status != plan.StatusReady {
			continue
		}
		err := execute(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", p.Source, err)
		}
		outcomes = append(outcomes, plan.Outcome{Plan: p, Moved: err == nil, Err: err})
	}
	return outcomes
}

func printPlans(plans []plan.Plan) {
	for _, p := range plans {
		switch p.Status {
		case plan.StatusReady:
			fmt.Printf("%s\n  -> %s\n", p.Source, p.Target)
		case plan.StatusNoOp:
			fmt.Printf("%s\n  already in place\n", p.Source)
		default:
			fmt.Printf("%s\n  skipped: %s\n", p.Source, p.Reason)
		}
	}
}
