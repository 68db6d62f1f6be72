package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

var (
	searchLimit int
	searchFile  string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the ingested document",
	Long: `Performs semantic search over the ingested document.
The query is embedded and matched against stored chunk vectors,
returning the most similar passages first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of passages")
	searchCmd.Flags().StringVar(&searchFile, "file", "", "path of the ingested document to query (default: last ingested)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	opts := driving.RetrieveOptions{
		TopK:     searchLimit,
		FilePath: searchFile,
	}

	chunks, err := retrievalService.Retrieve(ctx, query, opts)
	if err != nil {
		// A missing collection means the same thing as no recorded
		// document: there is nothing to search yet.
		if errors.Is(err, domain.ErrNoDocumentIngested) || errors.Is(err, domain.ErrCollectionNotFound) {
			cmd.Println("No document ingested yet. Run 'docsift ingest <file>' first.")
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputChunksJSON(cmd, chunks)
	}

	return outputChunksTable(cmd, chunks)
}

func outputChunksJSON(cmd *cobra.Command, chunks []domain.RetrievedChunk) error {
	if chunks == nil {
		chunks = []domain.RetrievedChunk{}
	}
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputChunksTable(cmd *cobra.Command, chunks []domain.RetrievedChunk) error {
	if len(chunks) == 0 {
		cmd.Println("No passages found.")
		return nil
	}

	cmd.Println("Passages:")
	cmd.Println()
	for i := range chunks {
		label := chunks[i].Metadata.Title
		if label == "" {
			label = chunks[i].Metadata.FileName
		}

		cmd.Printf("  [%d] %s, chunk %d (%.2f)\n",
			i+1, label, chunks[i].Metadata.ChunkIndex, chunks[i].Score)
		cmd.Printf("      %s\n", snippet(chunks[i].Text))
		cmd.Println()
	}

	return nil
}

// snippet truncates chunk text for table display.
func snippet(text string) string {
	const maxLen = 200
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
