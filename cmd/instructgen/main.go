// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/instructgen/ai"
	"github.com/poiesic/instructgen/ai/openai"
	"github.com/poiesic/instructgen/core"
	"github.com/poiesic/instructgen/crawl"
	"github.com/poiesic/instructgen/dataset"
	"github.com/poiesic/instructgen/pipeline"
	"github.com/poiesic/instructgen/quality"
	"github.com/poiesic/instructgen/source"
	"github.com/poiesic/instructgen/storage/badger"
	"github.com/poiesic/instructgen/storage/disk"
	"github.com/poiesic/instructgen/summary"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "instructgen",
		Usage: "Document enrichment and instruct-dataset generation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "etl",
				Usage:  "Collect a document collection, crawl child links, score quality, and persist",
				Action: etlCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input-dir",
						Aliases:  []string{"i"},
						Usage:    "Content source root directory (one subdirectory per collection)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Collection to collect",
						Value: "default",
					},
					&cli.StringFlag{
						Name:  "completer-host",
						Usage: "Completion service host URL",
						Value: "http://localhost:8000/v1",
					},
					&cli.StringFlag{
						Name:  "completer-model",
						Usage: "Completion model name",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the completion service",
						Value:   "none",
						EnvVars: []string{"INSTRUCTGEN_TOKEN"},
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Maximum concurrent model calls",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "no-crawl",
						Usage: "Skip crawling child URLs",
					},
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "Skip model calls and assign placeholder scores",
					},
				},
			},
			{
				Name:   "gen-dataset",
				Usage:  "Generate an instruct dataset from the persisted corpus",
				Action: genDatasetCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name to store the dataset under",
						Value: "default",
					},
					&cli.StringFlag{
						Name:  "completer-host",
						Usage: "Completion service host URL",
						Value: "http://localhost:8000/v1",
					},
					&cli.StringFlag{
						Name:  "completer-model",
						Usage: "Completion model name",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the completion service",
						Value:   "none",
						EnvVars: []string{"INSTRUCTGEN_TOKEN"},
					},
					&cli.IntFlag{
						Name:  "max-chars",
						Usage: "Maximum summary length in characters",
						Value: 256,
					},
					&cli.Float64Flag{
						Name:  "val-ratio",
						Usage: "Validation split ratio",
						Value: 0.1,
					},
					&cli.Float64Flag{
						Name:  "test-ratio",
						Usage: "Test split ratio",
						Value: 0.1,
					},
					&cli.IntFlag{
						Name:  "min-length",
						Usage: "Minimum document content length",
						Value: 50,
					},
					&cli.Float64Flag{
						Name:  "min-quality",
						Usage: "Minimum quality score (unscored documents pass)",
						Value: 0.3,
					},
					&cli.IntFlag{
						Name:  "loops",
						Usage: "Number of augmented summarization passes",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Maximum concurrent model calls",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Also export the dataset splits as JSON files",
					},
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "Skip model calls and assign placeholder summaries",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export a stored dataset as JSON split files",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name of the stored dataset",
						Value: "default",
					},
					&cli.StringFlag{
						Name:     "output-dir",
						Aliases:  []string{"o"},
						Usage:    "Directory to write train/validation/test JSON files",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func etlCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	docRepo := badger.NewDocumentRepository(backend)
	defer docRepo.Close()

	contentSource, err := source.NewDirectorySource(c.String("input-dir"))
	if err != nil {
		return fmt.Errorf("failed to open content source: %w", err)
	}

	completer, err := newCompleter(c)
	if err != nil {
		return err
	}

	scorerConfig := quality.DefaultScorerConfig()
	scorerConfig.Concurrency = c.Int("workers")
	scorerConfig.Mock = c.Bool("mock")

	scorer, err := quality.NewScorer(completer, scorerConfig)
	if err != nil {
		return fmt.Errorf("failed to create scorer: %w", err)
	}

	var crawler pipeline.ChildCrawler
	if c.Bool("no-crawl") {
		crawler = noCrawler{}
	} else {
		crawler, err = crawl.New(crawl.NewCollyFetcher(), crawl.DefaultConfig())
		if err != nil {
			return fmt.Errorf("failed to create crawler: %w", err)
		}
	}

	p, err := pipeline.NewPipeline(contentSource, crawler, scorer, docRepo)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	enriched, err := p.Run(ctx, c.String("collection"))
	if err != nil {
		return fmt.Errorf("etl failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Persisted %d enriched documents\n", len(enriched))
	return nil
}

func genDatasetCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	docRepo := badger.NewDocumentRepository(backend)
	defer docRepo.Close()
	dsRepo := badger.NewDatasetRepository(backend)
	defer dsRepo.Close()

	documents, err := docRepo.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("corpus is empty, run etl first")
	}

	completer, err := newCompleter(c)
	if err != nil {
		return err
	}

	summarizerConfig := summary.DefaultConfig()
	summarizerConfig.MaxCharacters = c.Int("max-chars")
	summarizerConfig.Concurrency = c.Int("workers")
	summarizerConfig.Mock = c.Bool("mock")

	summarizer, err := summary.NewSummarizer(completer, summarizerConfig)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	generatorConfig := dataset.DefaultConfig()
	generatorConfig.SummaryMaxCharacters = c.Int("max-chars")
	generatorConfig.ValSplitRatio = c.Float64("val-ratio")
	generatorConfig.TestSplitRatio = c.Float64("test-ratio")
	generatorConfig.MinDocumentLength = c.Int("min-length")
	generatorConfig.MinQualityScore = c.Float64("min-quality")
	generatorConfig.AugmentationLoops = c.Int("loops")

	generator, err := dataset.New(summarizer, generatorConfig)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	ds, err := generator.Generate(ctx, documents)
	if err != nil {
		return fmt.Errorf("dataset generation failed: %w", err)
	}

	name := c.String("name")
	if err := dsRepo.PutDataset(ctx, name, ds); err != nil {
		return fmt.Errorf("failed to store dataset: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Dataset %q: %d train, %d validation, %d test\n",
		name, len(ds.Train), len(ds.Validation), len(ds.Test))

	if outputDir := c.String("output-dir"); outputDir != "" {
		if err := disk.WriteDataset(outputDir, ds); err != nil {
			return fmt.Errorf("failed to export dataset: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported splits to %s\n", outputDir)
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	dsRepo := badger.NewDatasetRepository(backend)
	defer dsRepo.Close()

	ds, err := dsRepo.GetDataset(ctx, c.String("name"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	outputDir := c.String("output-dir")
	if err := disk.WriteDataset(outputDir, ds); err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Exported %d samples to %s\n", ds.Size(), outputDir)
	return nil
}

// newCompleter builds the model client from CLI flags.
func newCompleter(c *cli.Context) (ai.Completer, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("completer-host")),
		ai.WithModel(c.String("completer-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	completer, err := openai.NewCompleter(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}
	return completer, nil
}

// noCrawler satisfies pipeline.ChildCrawler without fetching anything.
type noCrawler struct{}

func (noCrawler) Crawl(ctx context.Context, documents []*core.Document) ([]*core.Document, error) {
	return nil, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
