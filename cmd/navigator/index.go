package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/navigator"
)

var (
	flagForce      bool
	flagThreads    int
	flagBufferSize int
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a repository for code navigation",
	Long:  "Walks a directory, extracts scope graphs with tree-sitter, and writes the results to the full-text index.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&flagForce, "force", false, "delete the index and reindex from scratch")
	indexCmd.Flags().IntVar(&flagThreads, "threads", 0, "extraction worker count (default: 4)")
	indexCmd.Flags().IntVar(&flagBufferSize, "buffer-size", 0, "per-thread indexing buffer size in bytes (default: 15MB)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	repoRoot := findRepoRoot(targetDir)
	indexDir := resolveIndexDir(repoRoot)

	if flagForce {
		if err := os.RemoveAll(indexDir); err != nil {
			return fmt.Errorf("removing index for --force: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared index: %s\n", indexDir)
	}

	var opts []navigator.Option
	if flagThreads > 0 {
		opts = append(opts, navigator.WithThreads(flagThreads))
	}
	if flagBufferSize > 0 {
		opts = append(opts, navigator.WithBufferSize(flagBufferSize))
	}

	s, err := navigator.Open(indexDir, opts...)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer s.Close()

	if err := s.Index(context.Background(), targetDir); err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %s in %s\n", targetDir, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Index: %s\n", indexDir)
	return nil
}
