package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
)

// scriptedDriver replies with the scripted strings in order and fails
// the test on any prompt beyond the script.
func scriptedDriver(t *testing.T, replies ...string) driving.ReviewDriver {
	t.Helper()
	i := 0
	return func(prompt domain.ReviewPrompt) (string, error) {
		if i >= len(replies) {
			t.Fatalf("unexpected prompt %d/%d for %q", prompt.Position, prompt.Total, prompt.Text)
		}
		reply := replies[i]
		i++
		return reply, nil
	}
}

// failingTaskStore rejects creation of the given texts and delegates
// everything else to an in-memory store.
type failingTaskStore struct {
	*memory.TaskStore
	reject map[string]bool
}

func (s *failingTaskStore) CreateTask(ctx context.Context, task domain.NewTask) (string, error) {
	if s.reject[task.Text] {
		return "", fmt.Errorf("creating %q: %w", task.Text, errTaskStoreDown)
	}
	return s.TaskStore.CreateTask(ctx, task)
}

var errTaskStoreDown = errors.New("task store unavailable")

func newCoordinator(vectors map[string][]float32, store *memory.TaskStore) *UploadCoordinator {
	scorer, _ := newEmbeddingScorer(vectors)
	settings := domain.DefaultSettings()
	return NewUploadCoordinator(NewDuplicateDetector(scorer), store, NewSessionManager(), settings)
}

func TestUpload_DuplicateSkipped(t *testing.T) {
	store := memory.NewTaskStore(domain.ExistingTask{ID: "t1", Text: "Buy groceries"})
	coordinator := newCoordinator(map[string][]float32{
		"buy groceries": {1, 0, 0},
	}, store)

	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.95, Position: 0, Kind: domain.KindTodo},
	}

	summary, err := coordinator.Upload(context.Background(), items, mustList(t, store), "today", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 1, summary.SkippedDuplicate)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, store.Created(), "duplicates are never created")

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	assert.Equal(t, domain.OutcomeSkippedDuplicate, outcome.Status)
	assert.Equal(t, "t1", outcome.MatchID)
	assert.InDelta(t, 1.0, outcome.Score, 1e-6)
}

func TestUpload_LowConfidenceReviewedThenCreated(t *testing.T) {
	store := memory.NewTaskStore()
	coordinator := newCoordinator(map[string][]float32{
		"call dentist": {0, 1, 0},
	}, store)

	items := []domain.ExtractedItem{
		{Text: "Call dentist", Confidence: 0.6, Position: 0, Kind: domain.KindTodo},
	}

	prompts := 0
	driver := func(prompt domain.ReviewPrompt) (string, error) {
		prompts++
		assert.Equal(t, "Call dentist", prompt.Text)
		assert.Equal(t, 1, prompt.Total)
		return "", nil
	}

	summary, err := coordinator.Upload(context.Background(), items, nil, "tomorrow", driver)
	require.NoError(t, err)

	assert.Equal(t, 1, prompts, "exactly one review prompt")
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 0, summary.SkippedDuplicate)

	created := store.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "Call dentist", created[0].Text, "empty reply keeps the text")
	assert.Equal(t, "tomorrow", created[0].Due)
}

func TestUpload_EditedItemCreatedWithReplacementText(t *testing.T) {
	store := memory.NewTaskStore()
	coordinator := newCoordinator(map[string][]float32{
		"call dentist": {0, 1, 0},
	}, store)

	items := []domain.ExtractedItem{
		{Text: "cal dentst", Confidence: 0.4, Position: 0, Kind: domain.KindPriority},
	}

	summary, err := coordinator.Upload(context.Background(), items, nil, "today",
		scriptedDriver(t, "call dentist"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	created := store.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "call dentist", created[0].Text)
	assert.Equal(t, domain.KindPriority, created[0].Kind)
}

func TestUpload_EmptyAfterReviewDropped(t *testing.T) {
	store := memory.NewTaskStore()
	// The scratched-out item resolves to whitespace and never reaches
	// detection or creation.
	coordinator := newCoordinator(map[string][]float32{
		"walk the dog": {0, 0, 1},
	}, store)

	items := []domain.ExtractedItem{
		{Text: "", Confidence: 0.2, Position: 0},
		{Text: "walk the dog", Confidence: 0.95, Position: 1},
	}

	summary, err := coordinator.Upload(context.Background(), items, nil, "today",
		scriptedDriver(t, ""))
	require.NoError(t, err)

	require.Len(t, summary.Decisions, 1)
	assert.Equal(t, "walk the dog", summary.Decisions[0].Item.Text)
	assert.Equal(t, 1, summary.Created)
}

func TestUpload_CreationFailureIsolatedPerItem(t *testing.T) {
	inner := memory.NewTaskStore()
	store := &failingTaskStore{TaskStore: inner, reject: map[string]bool{"call dentist": true}}

	scorer, _ := newEmbeddingScorer(map[string][]float32{
		"buy groceries": {1, 0, 0},
		"call dentist":  {0, 1, 0},
		"walk the dog":  {0, 0, 1},
	})
	coordinator := NewUploadCoordinator(
		NewDuplicateDetector(scorer), store, NewSessionManager(), domain.DefaultSettings())

	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.95, Position: 0},
		{Text: "call dentist", Confidence: 0.95, Position: 1},
		{Text: "walk the dog", Confidence: 0.95, Position: 2},
	}

	summary, err := coordinator.Upload(context.Background(), items, nil, "today", nil)
	require.NoError(t, err, "a single creation failure does not abort the upload")

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Outcomes, 3)
	assert.Equal(t, domain.OutcomeCreated, summary.Outcomes[0].Status)
	assert.Equal(t, domain.OutcomeFailed, summary.Outcomes[1].Status)
	assert.Contains(t, summary.Outcomes[1].Err, "task store unavailable")
	assert.Equal(t, domain.OutcomeCreated, summary.Outcomes[2].Status)
}

func TestUpload_NilDriverWithPendingItems(t *testing.T) {
	store := memory.NewTaskStore()
	coordinator := newCoordinator(nil, store)

	items := []domain.ExtractedItem{
		{Text: "cal dentst", Confidence: 0.4, Position: 0},
	}

	_, err := coordinator.Upload(context.Background(), items, nil, "today", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Created())
}

func TestUpload_DriverErrorAbortsBeforeCreation(t *testing.T) {
	store := memory.NewTaskStore()
	coordinator := newCoordinator(nil, store)

	items := []domain.ExtractedItem{
		{Text: "cal dentst", Confidence: 0.4, Position: 0},
	}
	driver := func(domain.ReviewPrompt) (string, error) {
		return "", errors.New("terminal closed")
	}

	_, err := coordinator.Upload(context.Background(), items, nil, "today", driver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal closed")
	assert.Empty(t, store.Created())
}

func TestUpload_SessionDiscardedAfterUpload(t *testing.T) {
	store := memory.NewTaskStore()
	scorer, _ := newEmbeddingScorer(map[string][]float32{"buy groceries": {1, 0, 0}})
	sessions := NewSessionManager()
	coordinator := NewUploadCoordinator(
		NewDuplicateDetector(scorer), store, sessions, domain.DefaultSettings())

	items := []domain.ExtractedItem{{Text: "buy groceries", Confidence: 0.95, Position: 0}}

	_, err := coordinator.Upload(context.Background(), items, nil, "today", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sessions.Len())
}

func mustList(t *testing.T, store *memory.TaskStore) []domain.ExistingTask {
	t.Helper()
	existing, err := store.ListTasks(context.Background())
	require.NoError(t, err)
	return existing
}
