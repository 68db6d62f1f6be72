package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift-labs/docsift-cli/internal/core/domain"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

var (
	askLimit   int
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested document",
	Long: `Retrieves the most relevant passages from the ingested document and
asks the configured language model to answer from them. Requires an
LLM provider in the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "number of supporting passages to retrieve")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the supporting passages after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	opts := driving.RetrieveOptions{TopK: askLimit}

	answer, sources, err := retrievalService.Ask(ctx, question, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDocumentIngested):
			return errors.New("no document ingested yet; run 'docsift ingest <file>' first")
		case errors.Is(err, domain.ErrLLMUnavailable):
			return errors.New("no language model configured; set llm.provider in the config file")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer)

	if askSources && len(sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range sources {
			cmd.Printf("  [%d] chunk %d (%.2f)\n",
				i+1, sources[i].Metadata.ChunkIndex, sources[i].Score)
		}
	}

	return nil
}
