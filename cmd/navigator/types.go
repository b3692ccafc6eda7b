package main

// CLIResult is the top-level JSON envelope for all query commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLISearchResult is a JSON-friendly search.Result.
type CLISearchResult struct {
	Path       string `json:"path"`
	LineNumber int    `json:"line_number"`
	Column     int    `json:"column"`
	Context    string `json:"context"`
}

// CLIRange is a JSON-friendly extract.TextRange.
type CLIRange struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
}

// CLIOccurrence is a JSON-friendly navcontext.Occurrence.
type CLIOccurrence struct {
	Kind  string   `json:"kind"`
	Range CLIRange `json:"range"`
}

// CLIFileSymbols is a JSON-friendly navcontext.FileSymbols.
type CLIFileSymbols struct {
	File string          `json:"file"`
	Data []CLIOccurrence `json:"data"`
}
