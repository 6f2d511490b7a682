package services

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// DuplicateDetector classifies new items as duplicates of existing
// tasks or as novel, using the similarity scorer and a threshold.
type DuplicateDetector struct {
	scorer *SimilarityScorer
}

// NewDuplicateDetector creates a detector over the given scorer.
func NewDuplicateDetector(scorer *SimilarityScorer) *DuplicateDetector {
	return &DuplicateDetector{scorer: scorer}
}

// Classify returns exactly one decision per new item, in input order.
// It never mutates its inputs.
//
// An empty existing list short-circuits: every item is novel with no
// comparison performed. That is the expected steady state for a
// first-ever task list, not an error.
//
// Items within the same batch are classified independently: two new
// items identical to each other but unlike any existing task are both
// novel. Intra-batch suppression is left to the caller.
func (d *DuplicateDetector) Classify(
	ctx context.Context,
	newItems []domain.ExtractedItem,
	existing []domain.ExistingTask,
	threshold float64,
) []domain.Decision {
	logger.Section("Duplicate Detection")
	logger.Debug("Classifying %d new items against %d existing tasks (threshold %.2f)",
		len(newItems), len(existing), threshold)

	decisions := make([]domain.Decision, len(newItems))
	for i, item := range newItems {
		decisions[i] = domain.Decision{Item: item}
		if len(existing) == 0 {
			continue
		}

		best := d.scorer.Best(ctx, item.Text, existing)
		decisions[i].Scored = true
		decisions[i].Score = best.Score
		decisions[i].Method = best.Method
		if best.Score >= threshold {
			decisions[i].Duplicate = true
			decisions[i].MatchID = best.CandidateID
			logger.Debug("Duplicate: %q matches task %s (%.3f, %s)",
				item.Text, best.CandidateID, best.Score, best.Method)
		} else {
			logger.Debug("Novel: %q (best %.3f, %s)", item.Text, best.Score, best.Method)
		}
	}

	return decisions
}
