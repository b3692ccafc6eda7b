package main

import (
	"github.com/spf13/cobra"
)

var flagCaseSensitive bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Text search the indexed content",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagCaseSensitive, "case-sensitive", false, "match case exactly")
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, _, err := openSession()
	if err != nil {
		return outputError("search", err)
	}
	defer s.Close()

	results, err := s.TextSearch(args[0], flagCaseSensitive)
	if err != nil {
		return outputError("search", err)
	}
	return outputResult(CLIResult{Command: "search", Results: toCLISearchResults(results)})
}

var flagMaxDistance int

var fuzzyCmd = &cobra.Command{
	Use:   "fuzzy <query>",
	Short: "Fuzzy (edit-distance) search the indexed content",
	Args:  cobra.ExactArgs(1),
	RunE:  runFuzzy,
}

func init() {
	fuzzyCmd.Flags().IntVar(&flagMaxDistance, "max-distance", 2, "maximum edit distance")
}

func runFuzzy(cmd *cobra.Command, args []string) error {
	s, _, err := openSession()
	if err != nil {
		return outputError("fuzzy", err)
	}
	defer s.Close()

	results, err := s.FuzzySearch(args[0], uint8(flagMaxDistance))
	if err != nil {
		return outputError("fuzzy", err)
	}
	return outputResult(CLIResult{Command: "fuzzy", Results: toCLISearchResults(results)})
}

var hoverCmd = &cobra.Command{
	Use:   "hover <file>",
	Short: "List hoverable (navigable) ranges in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHover,
}

func runHover(cmd *cobra.Command, args []string) error {
	s, _, err := openSession()
	if err != nil {
		return outputError("hover", err)
	}
	defer s.Close()

	file, err := resolveFilePath(args[0])
	if err != nil {
		return outputError("hover", err)
	}

	ranges, err := s.HoverableRanges(file)
	if err != nil {
		return outputError("hover", err)
	}
	return outputResult(CLIResult{Command: "hover", Results: toCLIRanges(ranges)})
}

var tokenInfoCmd = &cobra.Command{
	Use:   "token-info <file> <line> <start-col> <end-col>",
	Short: "Find every definition and reference for the identifier at a range",
	Long:  "line is 1-based; start-col/end-col are 0-based character offsets marking a half-open span on that line.",
	Args:  cobra.ExactArgs(4),
	RunE:  runTokenInfo,
}

func runTokenInfo(cmd *cobra.Command, args []string) error {
	s, _, err := openSession()
	if err != nil {
		return outputError("token-info", err)
	}
	defer s.Close()

	file, err := resolveFilePath(args[0])
	if err != nil {
		return outputError("token-info", err)
	}
	line, err := parseIntArg(args[1], "line")
	if err != nil {
		return outputError("token-info", err)
	}
	startCol, err := parseIntArg(args[2], "start-col")
	if err != nil {
		return outputError("token-info", err)
	}
	endCol, err := parseIntArg(args[3], "end-col")
	if err != nil {
		return outputError("token-info", err)
	}

	groups, err := s.TokenInfo(file, line, startCol, endCol)
	if err != nil {
		return outputError("token-info", err)
	}
	return outputResult(CLIResult{Command: "token-info", Results: toCLIFileSymbols(groups)})
}
