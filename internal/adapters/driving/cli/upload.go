package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/embedding/ollama"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/embedding/openai"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/ocr"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/taskstore/todoist"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/core/services"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

var (
	uploadDryRun    bool
	uploadThreshold float64
)

// Styles for the review prompts and the summary.
var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	itemTextStyle = lipgloss.NewStyle().Italic(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	createdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var uploadCmd = &cobra.Command{
	Use:   "upload [ocr-payload.json]",
	Short: "Upload extracted tasks, skipping duplicates",
	Long: `Reads an OCR payload file, reviews low-confidence items one at a
time on the terminal, compares each task against the existing task list
using sentence embeddings (or plain token overlap when no embedding
backend is reachable), and creates the novel tasks in Todoist.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false,
		"detect duplicates but do not create any tasks")
	uploadCmd.Flags().Float64Var(&uploadThreshold, "threshold", 0,
		"similarity threshold override (default from config)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}
	payload, err := ocr.Parse(data)
	if err != nil {
		return err
	}

	items := payload.Items()
	if len(items) == 0 {
		cmd.Println("No tasks found in the OCR payload.")
		return nil
	}
	logger.Info("Parsed %d items from %s", len(items), args[0])

	if uploadThreshold != 0 {
		settings.SimilarityThreshold = uploadThreshold
	}

	taskStore, err := newTaskStore(ctx)
	if err != nil {
		return err
	}

	existing, err := taskStore.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("listing existing tasks: %w", err)
	}

	uploader, cleanup := newUploadService(ctx, taskStore)
	defer cleanup()

	summary, err := uploader.Upload(ctx, items, existing, payload.Due(), consoleReviewDriver(cmd))
	if err != nil {
		return err
	}

	renderSummary(cmd, summary)
	return nil
}

// newTaskStore picks the task store for this run. Dry runs create into
// an in-memory store, still listing real tasks when a token is set so
// duplicate detection stays meaningful.
func newTaskStore(ctx context.Context) (driven.TaskStore, error) {
	if settings.Todoist.Token == "" {
		if uploadDryRun {
			logger.Warn("No Todoist token configured, dry run compares against an empty task list")
			return memory.NewTaskStore(), nil
		}
		return nil, fmt.Errorf("todoist token not configured: set todoist.token in %s or use --dry-run",
			settingsStore.Path())
	}

	client, err := todoist.NewClient(ctx, todoist.Config{Token: settings.Todoist.Token})
	if err != nil {
		return nil, err
	}

	if uploadDryRun {
		existing, err := client.ListTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing existing tasks: %w", err)
		}
		return memory.NewTaskStore(existing...), nil
	}
	return client, nil
}

// newUploadService wires the detection pipeline. The returned cleanup
// closes the cache store and the embedding backend.
func newUploadService(ctx context.Context, tasks driven.TaskStore) (driving.UploadService, func()) {
	var cacheStore driven.VectorCacheStore
	store, err := sqlite.NewCacheStore(settings.CachePath)
	if err != nil {
		logger.Warn("Embedding cache unavailable, running memory-only: %v", err)
	} else {
		cacheStore = store
	}

	provider := services.NewProvider(embeddingFactory())
	cache := services.NewEmbeddingCache(ctx, provider, cacheStore)
	scorer := services.NewSimilarityScorer(provider, cache)
	detector := services.NewDuplicateDetector(scorer)
	coordinator := services.NewUploadCoordinator(detector, tasks, services.NewSessionManager(), settings)

	cleanup := func() {
		if cacheStore != nil {
			if err := cacheStore.Close(); err != nil {
				logger.Warn("Closing cache store: %v", err)
			}
		}
		if err := provider.Close(); err != nil {
			logger.Warn("Closing embedding backend: %v", err)
		}
	}
	return coordinator, cleanup
}

// embeddingFactory builds the configured embedding backend. A nil
// factory means embeddings are off and scoring is lexical.
func embeddingFactory() services.EmbeddingFactory {
	cfg := settings.Embedding
	switch cfg.Backend {
	case domain.BackendOff:
		return nil

	case domain.BackendOpenAI:
		return func(ctx context.Context) (driven.EmbeddingService, error) {
			svc, err := openai.NewEmbeddingService(openai.Config{
				APIKey:  cfg.APIKey,
				BaseURL: cfg.BaseURL,
				Model:   cfg.Model,
			})
			if err != nil {
				return nil, err
			}
			if err := svc.Ping(ctx); err != nil {
				return nil, err
			}
			return svc, nil
		}

	default:
		return func(ctx context.Context) (driven.EmbeddingService, error) {
			svc := ollama.NewEmbeddingService(ollama.Config{
				BaseURL: cfg.BaseURL,
				Model:   cfg.Model,
			})
			if err := svc.Ping(ctx); err != nil {
				return nil, err
			}
			return svc, nil
		}
	}
}

// consoleReviewDriver renders review prompts on the terminal and reads
// one reply per prompt. Pressing enter keeps the text as extracted.
func consoleReviewDriver(cmd *cobra.Command) driving.ReviewDriver {
	reader := bufio.NewReader(cmd.InOrStdin())
	return func(p domain.ReviewPrompt) (string, error) {
		cmd.Printf("\n%s %s\n",
			headingStyle.Render(fmt.Sprintf("Reviewing item %d of %d", p.Position, p.Total)),
			faintStyle.Render(fmt.Sprintf("(confidence %.0f%%)", p.Confidence*100)))
		cmd.Printf("  %s\n", itemTextStyle.Render(p.Text))
		cmd.Print("Corrected text (enter to keep as-is): ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

func renderSummary(cmd *cobra.Command, summary *domain.UploadSummary) {
	cmd.Printf("\n%s\n", headingStyle.Render("Upload summary"))
	for _, outcome := range summary.Outcomes {
		switch outcome.Status {
		case domain.OutcomeCreated:
			cmd.Printf("  %s %s\n", createdStyle.Render("created"), outcome.Item.Text)
		case domain.OutcomeSkippedDuplicate:
			cmd.Printf("  %s %s %s\n", skippedStyle.Render("skipped"), outcome.Item.Text,
				faintStyle.Render(fmt.Sprintf("(duplicate of %s, %.2f)", outcome.MatchID, outcome.Score)))
		case domain.OutcomeFailed:
			cmd.Printf("  %s %s %s\n", failedStyle.Render("failed"), outcome.Item.Text,
				faintStyle.Render("("+outcome.Err+")"))
		}
	}
	cmd.Printf("\n%d created, %d skipped as duplicates, %d failed\n",
		summary.Created, summary.SkippedDuplicate, summary.Failed)
	if uploadDryRun {
		cmd.Println(faintStyle.Render("dry run: nothing was sent to Todoist"))
	}
}
