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
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/ai/azure"
	"github.com/poiesic/qagen/core"
	"github.com/poiesic/qagen/extract"
	"github.com/poiesic/qagen/testset"
)

func main() {
	app := &cli.App{
		Name:  "qagen",
		Usage: "Generate evaluation testsets from documents with Azure OpenAI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with AZURE_API_KEY and AZURE_API_BASE",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "csv",
				Usage:     "Generate a testset from a CSV file",
				ArgsUsage: "FILE",
				Action:    csvCommand,
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:  "columns",
						Usage: "Required CSV columns whose values form each record",
						Value: cli.NewStringSlice(extract.DefaultCSVColumns...),
					},
				}, generationFlags()...),
			},
			{
				Name:      "pdf",
				Usage:     "Generate a testset from a PDF file, one record per page",
				ArgsUsage: "FILE",
				Action:    pdfCommand,
				Flags:     generationFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path for the generated testset",
			Value:   "testset.json",
		},
		&cli.BoolFlag{
			Name:  "jsonl",
			Usage: "Write one JSON object per line instead of a pretty-printed array",
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of records to process in each batch",
			Value: testset.DefaultBatchSize,
		},
		&cli.IntFlag{
			Name:  "questions",
			Usage: "Number of questions to generate per batch",
			Value: 10,
		},
		&cli.StringFlag{
			Name:  "language",
			Usage: "ISO 639-1 language code for generated questions",
			Value: "en",
		},
		&cli.StringFlag{
			Name:  "question-type",
			Usage: "Question generation strategy (simple, conversational, situational)",
			Value: ai.QuestionTypeConversational,
		},
		&cli.StringFlag{
			Name:  "agent-description",
			Usage: "Override the agent description derived from the records",
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts for each batch's generation call",
			Value: 5,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 1 * time.Second,
		},
		&cli.DurationFlag{
			Name:  "sleep",
			Usage: "Delay between batches to respect rate limits",
			Value: testset.DefaultSleepBetween,
		},
		&cli.BoolFlag{
			Name:  "no-embed",
			Usage: "Skip embedding-based document ordering within batches",
		},
		&cli.StringFlag{
			Name:  "llm-model",
			Usage: "Chat deployment for question generation",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding deployment for document ordering",
			Value: "GPTVectorization",
		},
		&cli.StringFlag{
			Name:  "api-version",
			Usage: "Azure OpenAI API version",
			Value: "2024-02-01",
		},
	}
}

func csvCommand(c *cli.Context) error {
	path, err := inputPath(c)
	if err != nil {
		return err
	}

	records, err := extract.CSV(path, c.StringSlice("columns"))
	if err != nil {
		return fmt.Errorf("failed to extract CSV records: %w", err)
	}

	return runGeneration(c, path, records)
}

func pdfCommand(c *cli.Context) error {
	path, err := inputPath(c)
	if err != nil {
		return err
	}

	records, err := extract.PDF(path)
	if err != nil {
		return fmt.Errorf("failed to extract PDF records: %w", err)
	}

	return runGeneration(c, path, records)
}

func inputPath(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one input file argument")
	}
	return c.Args().First(), nil
}

func runGeneration(c *cli.Context, source string, records []core.Record) error {
	ctx := context.Background()

	if !ai.ValidQuestionType(c.String("question-type")) {
		return fmt.Errorf("invalid question type %q: must be one of %s",
			c.String("question-type"), strings.Join(ai.QuestionTypes, ", "))
	}
	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("questions") <= 0 {
		return fmt.Errorf("questions must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	aiConfig, err := ai.FromEnv(
		ai.WithAPIVersion(c.String("api-version")),
		ai.WithLLMModel(c.String("llm-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err != nil {
		return err
	}

	provider, err := azure.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	description := c.String("agent-description")
	if description == "" {
		description = testset.BuildAgentDescription(records)
	}

	config := &testset.Config{
		BatchSize:         c.Int("batch-size"),
		QuestionsPerBatch: c.Int("questions"),
		Language:          c.String("language"),
		QuestionType:      c.String("question-type"),
		SleepBetween:      c.Duration("sleep"),
		Retry: testset.RetryPolicy{
			MaxAttempts: c.Int("max-retries"),
			BaseDelay:   c.Duration("retry-delay"),
		},
	}

	var embedder ai.Embedder
	if !c.Bool("no-embed") {
		embedder = provider.Embedder()
	}

	fmt.Fprintf(os.Stderr, "Source: %s (%d records)\n", source, len(records))
	fmt.Fprintf(os.Stderr, "Endpoint: %s\n", aiConfig.APIBase)
	fmt.Fprintf(os.Stderr, "Model: %s\n", aiConfig.LLMModel)
	fmt.Fprintln(os.Stderr)

	runner := testset.NewRunner(provider.Generator(), embedder, config, os.Stderr)
	result, err := runner.Run(ctx, records, description)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	output := c.String("output")
	if c.Bool("jsonl") {
		err = result.SaveJSONL(output)
	} else {
		err = result.SaveJSON(output)
	}
	switch {
	case errors.Is(err, core.ErrNoData):
		fmt.Fprintln(os.Stderr, "No data was generated.")
		return nil
	case err != nil:
		return fmt.Errorf("failed to save testset: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Testset saved to: %s\n", output)
	return nil
}

func setup(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}

	// A missing .env file is fine when the variables are already exported
	if err := godotenv.Load(c.String("env-file")); err == nil {
		slog.Debug("loaded environment file", "path", c.String("env-file"))
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
