// Package cli implements the docsift command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/ai"
	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/config/file"
	"github.com/docsift-labs/docsift-cli/internal/adapters/driven/extraction/unipdf"
	statesqlite "github.com/docsift-labs/docsift-cli/internal/adapters/driven/state/sqlite"
	"github.com/docsift-labs/docsift-cli/internal/chunkers"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driven"
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
	"github.com/docsift-labs/docsift-cli/internal/core/services"
	"github.com/docsift-labs/docsift-cli/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string

	// Services wired by setupServices. Commands check for nil so tests
	// can inject their own implementations.
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	statusService    driving.StatusService

	// closers holds everything setupServices opened, torn down after
	// the command finishes.
	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Ingest a PDF and query it with semantic retrieval",
	Long: `Docsift ingests a single PDF document into a local vector index and
answers free-text queries against it. Configure an embedding provider,
ingest a document, then search or ask questions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if skipsServiceSetup(cmd) {
			return nil
		}
		return setupServices(validatesEmbedding(cmd))
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.docsift)")
}

// Execute runs the root command with the given version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// skipsServiceSetup reports whether a command runs without the full
// service stack.
func skipsServiceSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// validatesEmbedding reports whether a command should fail fast when
// the embedding service is unreachable. Ingestion runs a long pipeline,
// so connectivity is checked up front rather than mid-run.
func validatesEmbedding(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "ingest", "watch":
		return true
	}
	return false
}

// setupServices wires configuration, adapters and core services. It is
// a no-op when a test has already injected services.
func setupServices(validateEmbedding bool) error {
	if ingestService != nil || retrievalService != nil || statusService != nil {
		return nil
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := file.LoadSettings(configStore)

	var embedder driven.EmbeddingService
	if validateEmbedding {
		embedder, err = ai.CreateAndValidateEmbeddingService(settings)
	} else {
		embedder, err = ai.CreateEmbeddingService(settings)
	}
	if err != nil {
		return fmt.Errorf("configuring embedding service: %w", err)
	}
	closers = append(closers, embedder.Close)

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}

	vectorStore, err := ai.CreateVectorStore(settings, dataDir)
	if err != nil {
		return fmt.Errorf("configuring vector store: %w", err)
	}

	stateStore, err := statesqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	closers = append(closers, stateStore.Close)

	llm, err := ai.CreateLLMService(settings)
	if err != nil {
		return fmt.Errorf("configuring language model: %w", err)
	}
	if llm != nil {
		closers = append(closers, llm.Close)
	}

	chunker, err := chunkers.ForStrategy(
		chunkStrategyOrDefault(settings),
		chunkSizeOrDefault(settings),
		chunkOverlapOrDefault(settings),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	batcherOpts := []services.BatcherOption{}
	if settings.EmbeddingBatchSize > 0 {
		batcherOpts = append(batcherOpts, services.WithBatchSize(settings.EmbeddingBatchSize))
	}
	batcher := services.NewBatcher(embedder, batcherOpts...)
	index := services.NewIndexManager(vectorStore, settings.Collection)

	ingestService = services.NewIngestService(unipdf.NewExtractor(), chunker, batcher, index, stateStore)

	retrieval := services.NewRetrievalService(batcher, index, stateStore, llm)
	if promptStore, perr := promptStoreFromConfig(configDir); perr == nil {
		retrieval.SetPromptStore(promptStore)
	} else {
		logger.Warn("prompt store unavailable: %v", perr)
	}
	retrievalService = retrieval

	statusService = services.NewStatusService(stateStore, embedder, settings.Collection, llm != nil)

	return nil
}

// promptStoreFromConfig opens the prompt store under the config
// directory, defaulting to ~/.docsift/prompts.
func promptStoreFromConfig(dir string) (*file.PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".docsift")
	}
	return file.NewPromptStore(filepath.Join(dir, "prompts"))
}

// closeServices tears down everything setupServices opened.
func closeServices() error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	closers = nil
	return errors.Join(errs...)
}

func chunkStrategyOrDefault(s file.Settings) string {
	if ingestStrategy != "" {
		return ingestStrategy
	}
	return s.ChunkStrategy
}

func chunkSizeOrDefault(s file.Settings) int {
	if ingestChunkSize > 0 {
		return ingestChunkSize
	}
	return s.ChunkSize
}

func chunkOverlapOrDefault(s file.Settings) int {
	if ingestOverlap > 0 {
		return ingestOverlap
	}
	return s.ChunkOverlap
}
