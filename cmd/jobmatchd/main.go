// Copyright 2025 TalentGrid Systems
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
	"time"

	jobmatch "github.com/talentgrid/jobmatch"
	"github.com/talentgrid/jobmatch/ai"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/probe"
	"github.com/talentgrid/jobmatch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "jobmatchd",
		Usage: "Semantic job matching over an embedded posting corpus",
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
				Name:   "build",
				Usage:  "Build the index from a job corpus",
				Action: buildCommand,
				Flags: append(matcherFlags(),
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Corpus CSV file or directory containing jobs_enhanced.csv/jobs.csv",
						Required: true,
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Search the index with resume text",
				Action: searchCommand,
				Flags: append(matcherFlags(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Resume text to match",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to return",
						Value: search.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role filter (fullstack, devops, general); auto-detected when omitted",
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve the matching API over HTTP",
				Action: serveCommand,
				Flags: append(matcherFlags(),
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8001",
					},
					&cli.BoolFlag{
						Name:  "check-urls",
						Usage: "Probe result URLs and drop dead postings",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func matcherFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the artifact database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.DurationFlag{
			Name:  "request-timeout",
			Usage: "Timeout for each embedding request",
			Value: 30 * time.Second,
		},
	}
}

func newMatcher(c *cli.Context, extra ...jobmatch.MatcherOption) (*jobmatch.Matcher, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRequestTimeout(c.Duration("request-timeout")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := append([]jobmatch.MatcherOption{jobmatch.WithAIConfig(cfg)}, extra...)
	return jobmatch.NewMatcher(c.String("db"), opts...)
}

func buildCommand(c *cli.Context) error {
	matcher, err := newMatcher(c)
	if err != nil {
		return err
	}
	defer matcher.Close()

	count, err := matcher.BuildIndex(context.Background(), c.String("corpus"))
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Indexed %d jobs\n", count)
	return nil
}

func searchCommand(c *cli.Context) error {
	role, err := core.ParseRole(c.String("role"))
	if err != nil {
		return err
	}

	matcher, err := newMatcher(c)
	if err != nil {
		return err
	}
	defer matcher.Close()

	ctx := context.Background()
	if err := matcher.LoadIndex(ctx); err != nil {
		return fmt.Errorf("no index available, run build first: %w", err)
	}

	resp, err := matcher.Search(ctx, c.String("query"), c.Int("top-k"), role)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Role: %s, %d hits\n", resp.Role, len(resp.Results))
	for i, hit := range resp.Results {
		fmt.Printf("%d: %s at %s (%d) [score %0.3f, similarity %0.3f, overlap %0.3f]\n",
			i+1, hit.Job.Title, hit.Job.Company, hit.Job.Id, hit.Score, hit.Similarity, hit.SkillOverlap)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	var extra []jobmatch.MatcherOption
	if c.Bool("check-urls") {
		extra = append(extra, jobmatch.WithEngineOptions(
			search.WithLivenessChecker(probe.NewChecker(0)),
		))
	}

	matcher, err := newMatcher(c, extra...)
	if err != nil {
		return err
	}
	defer matcher.Close()

	ctx := context.Background()
	if err := matcher.LoadIndex(ctx); err != nil {
		if err == search.ErrNoIndex {
			slog.Info("no existing index found, call /index/build to create one")
		} else {
			slog.Warn("could not load existing index", "err", err)
		}
	} else {
		slog.Info("loaded existing index", "jobs", matcher.JobCount())
	}

	srv := newServer(matcher)
	slog.Info("listening", "addr", c.String("listen"))
	return srv.listenAndServe(c.String("listen"))
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
