package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statusJSON   bool
	historyLimit int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline status",
	Long: `Shows the currently ingested document, the configured embedding
model and vector collection, and whether asking questions is enabled.`,
	RunE: runStatus,
}

var statusHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past ingestions",
	RunE:  runStatusHistory,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	statusHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	statusCmd.AddCommand(statusHistoryCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	ctx := context.Background()
	report, err := statusService.Status(ctx)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if statusJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if report.LastIngest == nil {
		cmd.Println("No document ingested yet.")
	} else {
		cmd.Printf("Document:   %s\n", report.LastIngest.FileName)
		if report.LastIngest.Title != "" {
			cmd.Printf("Title:      %s\n", report.LastIngest.Title)
		}
		cmd.Printf("Chunks:     %d\n", report.LastIngest.ChunkCount)
		cmd.Printf("Ingested:   %s\n", report.LastIngest.ProcessedAt.Local().Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("Embedding:  %s\n", report.EmbeddingModel)
	cmd.Printf("Collection: %s\n", report.Collection)
	if report.AskEnabled {
		cmd.Println("Ask:        enabled")
	} else {
		cmd.Println("Ask:        disabled (no LLM configured)")
	}

	return nil
}

func runStatusHistory(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	ctx := context.Background()
	entries, err := statusService.History(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No ingestions recorded.")
		return nil
	}

	for i := range entries {
		cmd.Printf("  %s  %s (%d chunks)\n",
			entries[i].ProcessedAt.Local().Format("2006-01-02 15:04"),
			entries[i].FileName,
			entries[i].ChunkCount)
	}

	return nil
}
