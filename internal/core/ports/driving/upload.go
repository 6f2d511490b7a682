package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// ReviewDriver supplies one human reply per review prompt. It is the
// conversational turn-taking surface: the coordinator calls it once per
// queued low-confidence item and blocks until the reply arrives.
//
// An empty or whitespace-only reply accepts the item text as-is.
type ReviewDriver func(prompt domain.ReviewPrompt) (string, error)

// UploadService ingests extracted items into the external task store.
type UploadService interface {
	// Upload runs the full pipeline: low-confidence review, duplicate
	// detection against the supplied existing tasks, and creation of
	// novel items. It always returns a complete summary; per-item
	// creation failures are recorded in the summary, not returned.
	//
	// The driver is consulted only when at least one item falls below
	// the confidence review threshold.
	Upload(
		ctx context.Context,
		items []domain.ExtractedItem,
		existing []domain.ExistingTask,
		due string,
		driver ReviewDriver,
	) (*domain.UploadSummary, error)
}
