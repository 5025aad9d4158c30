package main

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"example/describe/internal/config"
	"example/describe/internal/output"
	"example/describe/internal/resolver"
	"example/describe/internal/service"
	"example/describe/internal/source"
	"example/describe/internal/vision"
)

const outDir = "out"

type options struct {
	image     string
	dir       string
	urls      string
	topK      int
	threshold float64
	out       string
	csv       bool
	noRaw     bool
}

func main() {
	var (
		cfg  *config.Config
		opts options
	)
	rootCmd := &cobra.Command{
		Use:           "describe",
		Short:         "Describe images (caption + tags) using a cloud vision service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var threshold *float64
			if cmd.Flags().Changed("threshold") {
				threshold = &opts.threshold
			}
			return run(cfg, opts, threshold)
		},
	}

	rootCmd.Flags().StringVar(&opts.image, "image", "", "Path to a single image file")
	rootCmd.Flags().StringVar(&opts.dir, "dir", "", "Directory of images (recursively)")
	rootCmd.Flags().StringVar(&opts.urls, "urls", "", "Text file with one image URL per line")
	rootCmd.Flags().IntVar(&opts.topK, "top-k", 5, "Top-K tags to show")
	rootCmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Minimum confidence for tags (e.g. 0.30)")
	rootCmd.Flags().StringVar(&opts.out, "out", "out/results.jsonl", "Path to JSONL output")
	rootCmd.Flags().BoolVar(&opts.csv, "csv", false, "Also write a CSV summary")
	rootCmd.Flags().BoolVar(&opts.noRaw, "no-raw", false, "Skip per-image JSON files")
	rootCmd.MarkFlagsOneRequired("image", "dir", "urls")
	rootCmd.MarkFlagsMutuallyExclusive("image", "dir", "urls")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		if errors.Is(err, config.ErrMissingCredentials) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, opts options, threshold *float64) error {
	sources, err := source.Enumerate(source.Options{
		Image:   opts.image,
		Dir:     opts.dir,
		URLFile: opts.urls,
	})
	if err != nil {
		if errors.Is(err, source.ErrNoSources) {
			return errors.New("no images found, check your inputs")
		}
		return err
	}

	analyzer := service.NewAnalyzer(vision.NewClient(cfg.Endpoint, cfg.Key), resolver.New())
	presenter := output.NewPresenter(os.Stdout, opts.topK, threshold)
	writer := output.NewWriter(outDir, opts.out, opts.topK, opts.noRaw, opts.csv)
	processor := service.NewProcessor(analyzer, presenter, writer)

	return processor.Run(context.Background(), sources)
}
