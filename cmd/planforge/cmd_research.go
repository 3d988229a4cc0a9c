package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"planforge/internal/logging"
	"planforge/internal/research"
)

var (
	webFile       string
	newsFile      string
	wikiFile      string
	financialFile string
	skipPlan      bool
)

var researchCmd = &cobra.Command{
	Use:   "research [company]",
	Short: "Synthesize pre-fetched research and generate an account plan",
	Long: `Aggregates pre-fetched source material into a labeled corpus,
synthesizes it into a summary with flagged conflicts, then generates and
stores an account plan for the company.

Source files hold JSON arrays of {"title", "body", "url"} records; the
financial file holds a single snapshot object. All sources are optional,
but with none at all the collaborator only sees the company name.

Example:
  planforge research "Acme Corp" --web web.json --wiki wiki.json --financial fin.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	company := research.ExtractCompanyName(strings.Join(args, " "))
	if company == "" {
		return fmt.Errorf("could not determine a company name from %q", strings.Join(args, " "))
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	sources, err := loadSources()
	if err != nil {
		return err
	}
	if sources.Empty() {
		fmt.Println("No source files given; proceeding with an empty corpus.")
	}

	p, err := a.pipeline(cmd.Context())
	if err != nil {
		return err
	}

	corpus := research.BuildCorpus(company, sources)
	logging.Research("corpus built for %s: %d records, %d chars", company, len(corpus.Records), len(corpus.Composite()))

	ctx, cancel := context.WithTimeout(cmd.Context(), a.callTimeout())
	defer cancel()

	fmt.Printf("Synthesizing research for %s...\n", company)
	synthesis, err := p.Synthesize(ctx, corpus)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	fmt.Printf("\n%s\n", synthesis.Summary)
	if len(synthesis.Conflicts) > 0 {
		fmt.Println("\nConflicting information found:")
		for _, c := range synthesis.Conflicts {
			fmt.Printf("  - %s\n", c)
		}
	}

	if skipPlan {
		return nil
	}

	fmt.Println("\nGenerating account plan...")
	plan, err := p.GeneratePlan(ctx, company, synthesis.Summary)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	if err := a.store.Save(company, plan); err != nil {
		return fmt.Errorf("plan generated but not saved: %w", err)
	}

	fmt.Printf("Account plan for %s saved (%d sections).\n", company, len(plan))
	fmt.Printf("View it with: planforge plans show %q\n", company)
	return nil
}

// loadSources reads whichever source files were given. A missing flag means
// that origin contributed nothing.
func loadSources() (research.Sources, error) {
	var s research.Sources
	var err error

	if s.Web, err = loadRecordFile(webFile); err != nil {
		return s, err
	}
	if s.News, err = loadRecordFile(newsFile); err != nil {
		return s, err
	}
	if s.Wiki, err = loadRecordFile(wikiFile); err != nil {
		return s, err
	}

	if financialFile != "" {
		data, err := os.ReadFile(financialFile)
		if err != nil {
			return s, fmt.Errorf("failed to read %s: %w", financialFile, err)
		}
		var snap research.FinancialSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return s, fmt.Errorf("failed to parse %s: %w", financialFile, err)
		}
		s.Financial = []research.SourceRecord{snap.FormatRecord()}
	}

	return s, nil
}

func loadRecordFile(path string) ([]research.SourceRecord, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []research.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
