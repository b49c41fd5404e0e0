package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/siherrmann/tagger"
	"github.com/siherrmann/tagger/core/disambiguate"
	"github.com/siherrmann/tagger/core/extract"
	"github.com/siherrmann/tagger/helper"
	"github.com/siherrmann/tagger/model"
)

const sampleContent = `Globex Corporation migrated the billing service to PostgreSQL.
Jane Doe, the Staff Engineer on the project, rewrote the queries:
SELECT invoice_id FROM invoices WHERE amount > $1,000.
Globex Corp. reported that she cut query latency by 45%.`

const termTable = `organization:
  - term: Globex Corporation
    confidence: 0.95
technical_term:
  - term: PostgreSQL
job_title:
  - term: Staff Engineer
`

func main() {
	// Thresholds and window sizes can be overridden via environment
	// variables or a .env file, see model.ConfigFromEnv.
	extraction, disambiguation := model.ConfigFromEnv()

	// Custom pipeline: the dictionary extractor loads a YAML term table
	dictionary := extract.NewDictionaryExtractor(extraction)
	termFile, err := writeTermFile()
	if err != nil {
		log.Fatalf("Failed to write term table: %v", err)
	}
	defer os.Remove(termFile)
	if err := dictionary.LoadTermsFile(termFile); err != nil {
		log.Fatalf("Failed to load term table: %v", err)
	}

	logger := slog.New(helper.NewPrettyHandler(os.Stdout, helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}))

	pipeline := extract.NewPipeline(
		logger,
		extraction,
		extract.NewPatternExtractor(extraction),
		extract.NewRuleExtractor(extraction),
		dictionary,
	)

	// Deterministic disambiguation IDs for reproducible output
	idGen := disambiguate.NewSequentialIDGenerator("group")
	service := disambiguate.NewDefaultService(logger, disambiguation, idGen)

	t := tagger.New(extraction, disambiguation)
	t.SetPipeline(pipeline)
	t.SetService(service)

	doc := model.NewDocument("Billing Migration", "advanced_example", "tenant-1", sampleContent)
	result, err := t.Process(context.Background(), doc)
	if err != nil {
		log.Fatalf("Failed to process document: %v", err)
	}

	fmt.Printf("\nExtracted %d entities in %d groups:\n", len(result.Entities), len(result.Groups()))
	for _, entity := range result.Entities {
		fmt.Printf("  %-14s %-28q confidence=%.2f group=%s\n",
			entity.Type, entity.Name, entity.Confidence, entity.DisambiguationID)
	}

	fmt.Println("\nAdvanced example completed successfully!")
}

// writeTermFile writes the embedded term table to a temporary file.
func writeTermFile() (string, error) {
	f, err := os.CreateTemp("", "terms-*.yaml")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(termTable); err != nil {
		f.Close()
		return "", err
	}
	return f.Name(), f.Close()
}
