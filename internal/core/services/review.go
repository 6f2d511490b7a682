package services

import (
	"fmt"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// ReviewState is the state of a review session.
type ReviewState string

// Review session states.
const (
	// StateIdle means no items have been queued yet.
	StateIdle ReviewState = "idle"

	// StateAwaitingInput means a prompt is outstanding for the item at
	// the cursor.
	StateAwaitingInput ReviewState = "awaiting_input"

	// StateComplete means every queued item has been resolved.
	StateComplete ReviewState = "complete"
)

// ReviewSession drives the one-item-at-a-time human review of
// low-confidence OCR items. It is a finite state machine:
//
//	Idle --Start--> AwaitingInput(0) --Submit--> ... --Submit--> Complete
//
// Start with zero eligible items goes straight to Complete.
//
// A session is owned by exactly one conversational turn at a time;
// callers serialize access per session id. Abandoning a review is
// expressed by discarding the session, there is no teardown.
type ReviewSession struct {
	id    string
	state ReviewState

	// items is the full original list, in original order.
	items []domain.ExtractedItem

	// queue holds the review-eligible items, preserving original
	// order and positions.
	queue []domain.ExtractedItem

	// cursor indexes into queue; cursor == len(queue) is terminal.
	cursor int

	// replacements maps original source position to confirmed text.
	// Keying by position makes misattribution impossible when two
	// reviewed items share the same text.
	replacements map[int]string
}

// NewReviewSession creates an idle session with the given identity.
func NewReviewSession(id string) *ReviewSession {
	return &ReviewSession{
		id:           id,
		state:        StateIdle,
		replacements: make(map[int]string),
	}
}

// ID returns the session identity.
func (s *ReviewSession) ID() string {
	return s.id
}

// State returns the current state.
func (s *ReviewSession) State() ReviewState {
	return s.state
}

// Start queues the items whose confidence is strictly below threshold,
// preserving original order and positions. With no eligible items the
// session completes immediately; a zero-item review is a no-op, not an
// error. Start is valid only in the idle state.
func (s *ReviewSession) Start(items []domain.ExtractedItem, threshold float64) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: start called in %s", domain.ErrInvalidState, s.state)
	}

	s.items = make([]domain.ExtractedItem, len(items))
	copy(s.items, items)

	for _, item := range s.items {
		if item.Confidence < threshold {
			s.queue = append(s.queue, item)
		}
	}

	if len(s.queue) == 0 {
		s.state = StateComplete
		logger.Debug("Review session %s: nothing below %.2f, complete", s.id, threshold)
		return nil
	}

	s.state = StateAwaitingInput
	logger.Info("Review session %s: %d of %d items need review", s.id, len(s.queue), len(s.items))
	return nil
}

// Prompt returns the prompt for the item at the cursor. Positions are
// 1-based for display. Valid only while awaiting input.
func (s *ReviewSession) Prompt() (domain.ReviewPrompt, error) {
	if s.state != StateAwaitingInput {
		return domain.ReviewPrompt{}, fmt.Errorf("%w: prompt requested in %s", domain.ErrInvalidState, s.state)
	}
	item := s.queue[s.cursor]
	return domain.ReviewPrompt{
		Position:   s.cursor + 1,
		Total:      len(s.queue),
		Text:       item.Text,
		Confidence: item.Confidence,
	}, nil
}

// Submit resolves the item at the cursor and advances. An empty or
// whitespace-only reply accepts the original text unchanged; anything
// else replaces it. Valid only while awaiting input.
func (s *ReviewSession) Submit(reply string) error {
	if s.state != StateAwaitingInput {
		return fmt.Errorf("%w: submit called in %s", domain.ErrInvalidState, s.state)
	}

	item := s.queue[s.cursor]
	reply = strings.TrimSpace(reply)
	if reply != "" {
		s.replacements[item.Position] = reply
		logger.Debug("Review session %s: item %d edited", s.id, item.Position)
	} else {
		logger.Debug("Review session %s: item %d accepted as-is", s.id, item.Position)
	}

	s.cursor++
	if s.cursor == len(s.queue) {
		s.state = StateComplete
		logger.Info("Review session %s complete", s.id)
	}
	return nil
}

// ResolvedItems returns the full original item list with reviewed items
// patched at their original positions, in original order. Edited items
// carry confidence 1.0 because a human confirmed the text. Valid only
// once the session is complete.
func (s *ReviewSession) ResolvedItems() ([]domain.ExtractedItem, error) {
	if s.state != StateComplete {
		return nil, fmt.Errorf("%w: resolved items requested in %s", domain.ErrInvalidState, s.state)
	}

	resolved := make([]domain.ExtractedItem, len(s.items))
	copy(resolved, s.items)
	for i := range resolved {
		if text, ok := s.replacements[resolved[i].Position]; ok {
			resolved[i].Text = text
			resolved[i].Confidence = 1.0
		}
	}
	return resolved, nil
}
