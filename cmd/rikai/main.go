// Command rikai matches a directory of behavior-pattern rules against a C
// source file: ingest the source, load the rules, run the matcher over
// each, and report the results either as live text or as a JSON document
// (§6). This driver, the rule-directory walker, and the reporter are all
// outside the pattern-pipeline core (§1); they exist only to wire it up
// to a runnable program.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dewolf-research/rikai-frontend/internal/database"
	"github.com/dewolf-research/rikai-frontend/internal/ingest"
	"github.com/dewolf-research/rikai-frontend/internal/matcher"
	"github.com/dewolf-research/rikai-frontend/internal/report"
	"github.com/dewolf-research/rikai-frontend/internal/ruleset"
)

func main() {
	var (
		rulesDir      = flag.String("rules", "rules", "directory of .yaml/.yml rule files")
		ingestTool    = flag.String("ingest", "", "path to the external ingest executable")
		ingestTimeout = flag.Duration("ingest-timeout", 2*time.Minute, "timeout for the ingest subprocess")
		jsonOutput    = flag.Bool("json", false, "emit results as a JSON document instead of live text")
		failFast      = flag.Bool("fail-fast", false, "abort loading on the first malformed rule file")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rikai [flags] <source-file>")
		os.Exit(2)
	}
	source := flag.Arg(0)

	if err := run(runOptions{
		source:        source,
		rulesDir:      *rulesDir,
		ingestTool:    *ingestTool,
		ingestTimeout: *ingestTimeout,
		jsonOutput:    *jsonOutput,
		failFast:      *failFast,
	}); err != nil {
		slog.Error("rikai run failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	source        string
	rulesDir      string
	ingestTool    string
	ingestTimeout time.Duration
	jsonOutput    bool
	failFast      bool
}

func run(opt runOptions) error {
	ctx := context.Background()

	slog.Info("loading rules", "dir", opt.rulesDir)
	policy := ruleset.SkipAndReport
	if opt.failFast {
		policy = ruleset.FailFast
	}
	loaded, err := ruleset.Load(opt.rulesDir, ruleset.WithPolicy(policy))
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	for _, loadErr := range loaded.Errors {
		slog.Warn("skipped malformed rule", "error", loadErr)
	}
	slog.Info("rules loaded", "count", len(loaded.Rules))

	slog.Info("ingesting source", "path", opt.source)
	ingester := ingest.NewProcessIngester(opt.ingestTool)
	databaseID, err := ingester.Ingest(ctx, opt.source, opt.ingestTimeout)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", opt.source, err)
	}
	slog.Info("source ingested", "database_id", databaseID)

	// The graph database is an external black box (§1); no concrete client
	// ships with this pipeline, so wiring here stands in for whatever
	// database.Manager a deployment configures against its own instance.
	manager := database.NewMockManager(map[string][]database.Row{databaseID: nil})
	db, err := manager.Open(ctx, databaseID)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", databaseID, err)
	}
	defer db.Close()

	m := matcher.New(db)
	var results []report.RuleResult
	for _, r := range loaded.Rules {
		matches, err := m.Run(ctx, r.Pattern)
		if err != nil {
			return fmt.Errorf("matching rule %q: %w", r.Name, err)
		}
		if len(matches) == 0 {
			continue
		}
		results = append(results, report.RuleResult{
			Name:    r.Name,
			Meta:    r.Meta,
			Pattern: r.Pattern.Blocks[0].String(),
			Matches: matches,
		})
	}

	if opt.jsonOutput {
		return report.WriteJSON(os.Stdout, results)
	}
	return report.WriteText(os.Stdout, results)
}
