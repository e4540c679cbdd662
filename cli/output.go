package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/poliscout/poliscout/discover"
	"github.com/samber/lo"
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

var (
	urlColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	dimColor  = color.New(color.Faint).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
)

func printCandidate(domain string, docType discover.DocumentType, c discover.Candidate) error {
	if jsonFlag {
		return printJSON(struct {
			Domain     string `json:"domain"`
			Type       string `json:"type"`
			URL        string `json:"url"`
			Source     string `json:"source"`
			Confidence int    `json:"confidence"`
		}{
			Domain:     domain,
			Type:       docType.String(),
			URL:        c.URL,
			Source:     c.Source.String(),
			Confidence: c.Confidence,
		})
	}

	fmt.Printf("%s\n", urlColor(c.URL))
	fmt.Printf("%s\n", dimColor(fmt.Sprintf("%s for %s (source: %s, confidence: %d)",
		docType.DisplayName(), domain, c.Source, c.Confidence)))
	return nil
}

func printDocuments(domain string, docs []discover.DiscoveredDocument) error {
	if jsonFlag {
		return printJSON(struct {
			Domain    string                        `json:"domain"`
			Documents []discover.DiscoveredDocument `json:"documents"`
		}{Domain: domain, Documents: docs})
	}

	if len(docs) == 0 {
		fmt.Printf("%s\n", warnColor(fmt.Sprintf("No policy documents found for %s", domain)))
		return nil
	}

	width := lo.Max(lo.Map(docs, func(d discover.DiscoveredDocument, _ int) int {
		return len(d.DisplayName)
	}))

	for _, d := range docs {
		fmt.Printf("  %-*s  %s\n", width, d.DisplayName, urlColor(d.URL))
	}
	return nil
}

func printNotFound(domain string, docType discover.DocumentType) {
	fmt.Printf("%s\n", warnColor(fmt.Sprintf("Could not find a %s for %s",
		docType.DisplayName(), domain)))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
