package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func startedSession(t *testing.T, items []domain.ExtractedItem, threshold float64) *ReviewSession {
	t.Helper()
	session := NewReviewSession("test-session")
	require.NoError(t, session.Start(items, threshold))
	return session
}

func TestReviewSession_NoItemsCompletesImmediately(t *testing.T) {
	session := startedSession(t, nil, 0.9)

	assert.Equal(t, StateComplete, session.State())

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestReviewSession_AllAboveThresholdCompletesImmediately(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.95, Position: 0},
		{Text: "call dentist", Confidence: 0.91, Position: 1},
	}

	session := startedSession(t, items, 0.9)

	assert.Equal(t, StateComplete, session.State())

	_, err := session.Prompt()
	assert.ErrorIs(t, err, domain.ErrInvalidState, "no prompts for a zero-item review")

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	assert.Equal(t, items, resolved)
}

func TestReviewSession_ConfidenceEqualToThresholdNotReviewed(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.9, Position: 0},
	}

	session := startedSession(t, items, 0.9)

	assert.Equal(t, StateComplete, session.State(), "only strictly-below-threshold items are reviewed")
}

func TestReviewSession_PromptIsOneBased(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.95, Position: 0},
		{Text: "call dntist", Confidence: 0.6, Position: 1},
		{Text: "walk the dgo", Confidence: 0.4, Position: 2},
	}

	session := startedSession(t, items, 0.9)
	require.Equal(t, StateAwaitingInput, session.State())

	prompt, err := session.Prompt()
	require.NoError(t, err)
	assert.Equal(t, 1, prompt.Position)
	assert.Equal(t, 2, prompt.Total)
	assert.Equal(t, "call dntist", prompt.Text)
	assert.InDelta(t, 0.6, prompt.Confidence, 1e-9)

	require.NoError(t, session.Submit(""))

	prompt, err = session.Prompt()
	require.NoError(t, err)
	assert.Equal(t, 2, prompt.Position)
	assert.Equal(t, "walk the dgo", prompt.Text)
}

func TestReviewSession_EmptyReplyKeepsOriginal(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "call dentist", Confidence: 0.6, Position: 0, Kind: domain.KindTodo},
	}

	session := startedSession(t, items, 0.9)
	require.NoError(t, session.Submit("   "))

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "call dentist", resolved[0].Text)
	assert.InDelta(t, 0.6, resolved[0].Confidence, 1e-9, "accepting as-is keeps the OCR confidence")
	assert.Equal(t, domain.KindTodo, resolved[0].Kind)
}

func TestReviewSession_NonEmptyReplyReplacesText(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "cal dentst", Confidence: 0.6, Position: 0},
	}

	session := startedSession(t, items, 0.9)
	require.NoError(t, session.Submit("  call dentist  "))

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "call dentist", resolved[0].Text, "reply is trimmed and replaces the text")
	assert.InDelta(t, 1.0, resolved[0].Confidence, 1e-9, "human-confirmed text carries full confidence")
}

func TestReviewSession_ResolvedLengthEqualsInputLength(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "buy groceries", Confidence: 0.95, Position: 0},
		{Text: "cal dentst", Confidence: 0.6, Position: 1},
		{Text: "walk the dog", Confidence: 0.92, Position: 2},
		{Text: "watr plants", Confidence: 0.3, Position: 3},
	}

	session := startedSession(t, items, 0.9)
	require.NoError(t, session.Submit("call dentist"))
	require.NoError(t, session.Submit(""))

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	require.Len(t, resolved, len(items))

	// Order and untouched items survive unchanged.
	assert.Equal(t, items[0], resolved[0])
	assert.Equal(t, "call dentist", resolved[1].Text)
	assert.Equal(t, items[2], resolved[2])
	assert.Equal(t, "watr plants", resolved[3].Text)
}

func TestReviewSession_IdenticalTextsPatchedByPosition(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "watr plants", Confidence: 0.5, Position: 0},
		{Text: "watr plants", Confidence: 0.5, Position: 1},
	}

	session := startedSession(t, items, 0.9)
	require.NoError(t, session.Submit(""))
	require.NoError(t, session.Submit("water plants"))

	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "watr plants", resolved[0].Text)
	assert.Equal(t, "water plants", resolved[1].Text, "the edit lands on the submitted position only")
}

func TestReviewSession_StateErrors(t *testing.T) {
	session := NewReviewSession("test-session")

	_, err := session.Prompt()
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, session.Submit("x"), domain.ErrInvalidState)
	_, err = session.ResolvedItems()
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	items := []domain.ExtractedItem{{Text: "cal dentst", Confidence: 0.6, Position: 0}}
	require.NoError(t, session.Start(items, 0.9))

	assert.ErrorIs(t, session.Start(items, 0.9), domain.ErrInvalidState, "start is idle-only")
	_, err = session.ResolvedItems()
	assert.ErrorIs(t, err, domain.ErrInvalidState, "no resolved items before completion")

	require.NoError(t, session.Submit(""))
	assert.Equal(t, StateComplete, session.State())
	assert.ErrorIs(t, session.Submit("x"), domain.ErrInvalidState, "no submits after completion")
}

func TestReviewSession_StartDoesNotAliasCallerSlice(t *testing.T) {
	items := []domain.ExtractedItem{
		{Text: "cal dentst", Confidence: 0.6, Position: 0},
	}

	session := startedSession(t, items, 0.9)
	items[0].Text = "mutated"

	require.NoError(t, session.Submit(""))
	resolved, err := session.ResolvedItems()
	require.NoError(t, err)
	assert.Equal(t, "cal dentst", resolved[0].Text)
}
