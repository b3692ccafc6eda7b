package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jward/navigator/internal/extract"
	"github.com/jward/navigator/internal/navcontext"
	"github.com/jward/navigator/internal/search"
)

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so
// RunE can propagate it to Cobra. In JSON mode the error is written to
// stdout as a CLIResult envelope; in text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{Command: command, Error: err.Error()}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

func outputResultText(result CLIResult) error {
	if result.Error != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Error)
		return fmt.Errorf("%s", result.Error)
	}
	switch v := result.Results.(type) {
	case []CLISearchResult:
		formatSearchResultsText(os.Stdout, v)
	case []CLIFileSymbols:
		formatFileSymbolsText(os.Stdout, v)
	case []CLIRange:
		formatRangesText(os.Stdout, v)
	default:
		fmt.Fprintln(os.Stdout, "No results found")
	}
	return nil
}

func formatSearchResultsText(w *os.File, results []CLISearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "File: %s, Line: %d, Column: %d\nContent:\n%s\n\n", r.Path, r.LineNumber, r.Column, r.Context)
	}
}

func formatFileSymbolsText(w *os.File, groups []CLIFileSymbols) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFILE\tLINE\tCOLUMN")
	for _, g := range groups {
		for _, occ := range g.Data {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", occ.Kind, g.File, occ.Range.StartLine, occ.Range.StartColumn)
		}
	}
	tw.Flush()
}

func formatRangesText(w *os.File, ranges []CLIRange) {
	if len(ranges) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	for _, r := range ranges {
		fmt.Fprintf(w, "%d:%d-%d:%d\n", r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
	}
}

func toCLISearchResults(results []search.Result) []CLISearchResult {
	out := make([]CLISearchResult, len(results))
	for i, r := range results {
		out[i] = CLISearchResult{Path: r.Path, LineNumber: r.LineNumber, Column: r.Column, Context: r.Context}
	}
	return out
}

func toCLIRanges(ranges []extract.TextRange) []CLIRange {
	out := make([]CLIRange, len(ranges))
	for i, r := range ranges {
		out[i] = CLIRange{StartLine: r.Start.Line, StartColumn: r.Start.Column, EndLine: r.End.Line, EndColumn: r.End.Column}
	}
	return out
}

func toCLIFileSymbols(groups []navcontext.FileSymbols) []CLIFileSymbols {
	out := make([]CLIFileSymbols, len(groups))
	for i, g := range groups {
		data := make([]CLIOccurrence, len(g.Data))
		for j, occ := range g.Data {
			kind := "definition"
			if occ.Kind == navcontext.KindReference {
				kind = "reference"
			}
			data[j] = CLIOccurrence{
				Kind: kind,
				Range: CLIRange{
					StartLine:   occ.Range.Start.Line,
					StartColumn: occ.Range.Start.Column,
					EndLine:     occ.Range.End.Line,
					EndColumn:   occ.Range.End.Column,
				},
			}
		}
		out[i] = CLIFileSymbols{File: g.File, Data: data}
	}
	return out
}
