package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/tagger"
	"github.com/siherrmann/tagger/model"
)

const sampleContent = `Acme Inc. hired John Smith as Chief Engineer on 2024-03-15.
Acme Corp. later promoted him after the launch of Orion v2.1.
The company now runs its reporting through GET /api/reports.
Contact Mr. Smith at john.smith@acme.com or call 555-123-4567.`

func main() {
	// Create a tagger with the default extractors and disambiguators
	t := tagger.NewDefault()

	doc := model.NewDocument("Company News", "basic_example", "tenant-1", sampleContent)

	fmt.Println("Processing document...")
	result, err := t.Process(context.Background(), doc)
	if err != nil {
		log.Fatalf("Failed to process document: %v", err)
	}

	fmt.Printf("\nExtracted %d entities:\n", len(result.Entities))
	for _, entity := range result.Entities {
		group := entity.DisambiguationID
		if group == "" {
			group = "-"
		}
		fmt.Printf("  %-14s %-28q confidence=%.2f group=%s\n",
			entity.Type, entity.Name, entity.Confidence, group)
	}

	fmt.Printf("\nEntity groups:\n")
	for id, group := range result.Groups() {
		fmt.Printf("  %s:\n", id)
		for _, entity := range group {
			primary, _ := entity.Attributes.GetBool(model.AttrIsPrimaryEntity)
			marker := " "
			if primary {
				marker = "*"
			}
			fmt.Printf("    %s %q (%s)\n", marker, entity.Name, entity.Type)
		}
	}

	fmt.Printf("\nDerived %d relations\n", len(result.Relations))
	fmt.Println("\nBasic example completed successfully!")
}
