package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure UploadCoordinator implements the interface.
var _ driving.UploadService = (*UploadCoordinator)(nil)

// UploadCoordinator is the external-facing entry point of the pipeline:
// it drives the low-confidence review to completion, classifies the
// resolved items against the existing task list, and creates the novel
// ones in the task store.
type UploadCoordinator struct {
	detector *DuplicateDetector
	tasks    driven.TaskStore
	sessions *SessionManager
	settings domain.Settings
}

// NewUploadCoordinator creates a coordinator.
func NewUploadCoordinator(
	detector *DuplicateDetector,
	tasks driven.TaskStore,
	sessions *SessionManager,
	settings domain.Settings,
) *UploadCoordinator {
	return &UploadCoordinator{
		detector: detector,
		tasks:    tasks,
		sessions: sessions,
		settings: settings,
	}
}

// Upload runs the pipeline for one batch of extracted items.
//
// The driver is called once per low-confidence item; a driver error
// aborts the upload before anything was created. Creation failures, by
// contrast, are intrinsic to a single item: they are recorded in the
// summary and do not stop the remaining items.
func (u *UploadCoordinator) Upload(
	ctx context.Context,
	items []domain.ExtractedItem,
	existing []domain.ExistingTask,
	due string,
	driver driving.ReviewDriver,
) (*domain.UploadSummary, error) {
	logger.Section("Task Upload")
	logger.Debug("Uploading %d items, %d existing tasks, due %q", len(items), len(existing), due)

	resolved, err := u.runReview(items, driver)
	if err != nil {
		return nil, err
	}

	// Items reviewed down to nothing are dropped before detection.
	kept := make([]domain.ExtractedItem, 0, len(resolved))
	for _, item := range resolved {
		if strings.TrimSpace(item.Text) == "" {
			logger.Debug("Dropping empty item at position %d", item.Position)
			continue
		}
		kept = append(kept, item)
	}

	decisions := u.detector.Classify(ctx, kept, existing, u.settings.SimilarityThreshold)

	summary := &domain.UploadSummary{Decisions: decisions}
	for _, decision := range decisions {
		summary.Outcomes = append(summary.Outcomes, u.apply(ctx, decision, due))
	}
	for _, outcome := range summary.Outcomes {
		switch outcome.Status {
		case domain.OutcomeCreated:
			summary.Created++
		case domain.OutcomeSkippedDuplicate:
			summary.SkippedDuplicate++
		case domain.OutcomeFailed:
			summary.Failed++
		}
	}

	logger.Info("Upload finished: %d created, %d skipped as duplicates, %d failed",
		summary.Created, summary.SkippedDuplicate, summary.Failed)
	return summary, nil
}

// runReview drives a review session to completion, one prompt per
// driver turn. With no low-confidence items the session completes
// immediately and the driver is never consulted.
func (u *UploadCoordinator) runReview(
	items []domain.ExtractedItem, driver driving.ReviewDriver,
) ([]domain.ExtractedItem, error) {
	session := u.sessions.Create()
	defer u.sessions.Delete(session.ID())

	if err := session.Start(items, u.settings.ConfidenceReviewThreshold); err != nil {
		return nil, err
	}

	for session.State() == StateAwaitingInput {
		prompt, err := session.Prompt()
		if err != nil {
			return nil, err
		}
		if driver == nil {
			return nil, fmt.Errorf("%w: %d items need review but no review driver was supplied",
				domain.ErrInvalidInput, prompt.Total)
		}
		reply, err := driver(prompt)
		if err != nil {
			return nil, fmt.Errorf("review driver: %w", err)
		}
		if err := session.Submit(reply); err != nil {
			return nil, err
		}
	}

	return session.ResolvedItems()
}

// apply executes one decision against the task store.
func (u *UploadCoordinator) apply(ctx context.Context, decision domain.Decision, due string) domain.TaskOutcome {
	outcome := domain.TaskOutcome{Item: decision.Item}
	if decision.Scored {
		outcome.Score = decision.Score
	}

	if decision.Duplicate {
		outcome.Status = domain.OutcomeSkippedDuplicate
		outcome.MatchID = decision.MatchID
		return outcome
	}

	taskID, err := u.tasks.CreateTask(ctx, domain.NewTask{
		Text: decision.Item.Text,
		Kind: decision.Item.Kind,
		Due:  due,
	})
	if err != nil {
		logger.Warn("Failed to create task %q: %v", decision.Item.Text, err)
		outcome.Status = domain.OutcomeFailed
		outcome.Err = err.Error()
		return outcome
	}

	outcome.Status = domain.OutcomeCreated
	outcome.TaskID = taskID
	return outcome
}
