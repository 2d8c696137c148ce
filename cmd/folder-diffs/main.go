package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aadniz/folder-diffs/internal/config"
	"github.com/Aadniz/folder-diffs/internal/progress"
	"github.com/Aadniz/folder-diffs/internal/rank"
	"github.com/Aadniz/folder-diffs/internal/report"
	"github.com/Aadniz/folder-diffs/internal/resolve"
	"github.com/Aadniz/folder-diffs/internal/scan"
	"github.com/Aadniz/folder-diffs/internal/similar"
	"github.com/Aadniz/folder-diffs/internal/units"
)

type options struct {
	configPath    string
	minSize       string
	maxSize       string
	minFiles      int
	minSimilarity float64
	depth         int
	sortMode      string
	output        string
	print         bool
	verbose       bool
	silent        bool
	interactive   bool
	workers       int
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "folder-diffs [flags] PATH...",
		Short:        "Find duplicate or similar folder structures",
		Long:         "Locate structurally similar directory subtrees, rank them by similarity and size, and optionally resolve them interactively without deleting anything.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "Config file path")
	flags.StringVar(&opts.minSize, "min-size", "", "Minimum folder size (e.g. 1KB)")
	flags.StringVar(&opts.maxSize, "max-size", "", "Maximum folder size (e.g. 10MB)")
	flags.IntVarP(&opts.minFiles, "min-files", "f", 1, "Minimum number of entries in a folder")
	flags.Float64VarP(&opts.minSimilarity, "min-similarity", "s", 50.0, "Minimum similarity percentage (0-100)")
	flags.IntVarP(&opts.depth, "depth", "d", 1, "Fingerprint depth")
	flags.StringVar(&opts.sortMode, "sort", "similarity", "Sort results by: similarity, size or name")
	flags.StringVarP(&opts.output, "output", "o", "", "Output CSV path (default: system temp directory)")
	flags.BoolVarP(&opts.print, "print", "p", false, "Print results to console even when there are many")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose progress (will slow down the scan)")
	flags.BoolVar(&opts.silent, "silent", false, "Don't print anything during scanning")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Resolve candidate pairs interactively")
	flags.IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "Number of comparison workers")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(args []string, opts *options) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var minSize, maxSize uint64
	if opts.minSize != "" {
		if minSize, err = units.Parse(opts.minSize); err != nil {
			return err
		}
	}
	if opts.maxSize != "" {
		if maxSize, err = units.Parse(opts.maxSize); err != nil {
			return err
		}
	}
	if maxSize > 0 && minSize > maxSize {
		return fmt.Errorf("min-size %s exceeds max-size %s", opts.minSize, opts.maxSize)
	}
	if opts.depth < 1 {
		return fmt.Errorf("depth must be at least 1")
	}
	if opts.minSimilarity < 0 || opts.minSimilarity > 100 {
		return fmt.Errorf("min-similarity must be between 0 and 100")
	}

	mode, err := rank.ParseMode(opts.sortMode)
	if err != nil {
		return err
	}

	roots, err := config.ValidateRoots(args)
	if err != nil {
		return err
	}

	rep := progress.New(opts.verbose, opts.silent)

	folders, err := scan.Scan(roots, scan.Options{
		MinSize:    minSize,
		MaxSize:    maxSize,
		MinEntries: opts.minFiles,
		Depth:      opts.depth,
		Exclude:    cfg.Exclude,
	}, rep)
	if err != nil {
		return err
	}
	rep.Done()
	rep.Printf("Found %d folders", len(folders))

	total := int64(len(folders)) * int64(len(folders)-1) / 2
	rep.Printf("%d folder pairs to be compared", total)

	pairs := similar.Compare(folders, similar.Options{
		Depth:         opts.depth,
		MinSimilarity: opts.minSimilarity,
		Workers:       opts.workers,
	}, rep)
	rep.Done()

	rank.Sort(pairs, mode)

	if len(pairs) < report.DisplayLimit || opts.print {
		report.Print(os.Stdout, pairs)
	} else {
		fmt.Println("Too many results to print to stdout.")
		fmt.Println("Use `-p` to force print it if wanted")

		outputPath := opts.output
		if outputPath == "" {
			outputPath = cfg.OutputFile
		}
		if outputPath == "" {
			outputPath = report.DefaultCSVPath(time.Now())
		}
		if err := report.SaveCSV(pairs, outputPath); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", outputPath)
	}

	if opts.interactive {
		ws := resolve.NewWorkstation(os.Stdin, os.Stdout, resolve.DefaultLogPath(time.Now()))
		if err := ws.Run(pairs); err != nil {
			return err
		}
	}

	return nil
}
