package domain

// Method identifies how a similarity score was computed.
type Method string

// Available scoring methods.
const (
	// MethodEmbedding is cosine similarity over model embeddings.
	// Scores are in [-1,1].
	MethodEmbedding Method = "embedding"

	// MethodLexical is token-set Jaccard similarity, used when the
	// embedding model is unavailable. Scores are in [0,1].
	MethodLexical Method = "lexical"
)

// String returns the string representation.
func (m Method) String() string {
	return string(m)
}

// SimilarityResult scores one candidate task against a query text.
type SimilarityResult struct {
	// CandidateID is the external id of the scored candidate.
	CandidateID string

	// Score is the similarity between query and candidate.
	Score float64

	// Method is the scoring method that was active for this call.
	Method Method
}

// Decision classifies one new item against the existing task list.
type Decision struct {
	// Item is the classified item.
	Item ExtractedItem

	// Duplicate is true when the best match met the threshold.
	Duplicate bool

	// MatchID is the existing task the item duplicates.
	// Set only when Duplicate is true.
	MatchID string

	// Score is the best similarity found. Meaningful only when Scored.
	Score float64

	// Scored is false when no comparison was performed because the
	// existing task list was empty.
	Scored bool

	// Method is the scoring method used. Empty when not Scored.
	Method Method
}

// OutcomeStatus describes what happened to an item during upload.
type OutcomeStatus string

// Available outcome statuses.
const (
	// OutcomeCreated means a task was created in the task store.
	OutcomeCreated OutcomeStatus = "created"

	// OutcomeSkippedDuplicate means creation was skipped because the
	// item duplicates an existing task.
	OutcomeSkippedDuplicate OutcomeStatus = "skipped_duplicate"

	// OutcomeFailed means the task store rejected the create call.
	OutcomeFailed OutcomeStatus = "failed"
)

// TaskOutcome is the per-item result of an upload.
type TaskOutcome struct {
	// Item is the processed item, post-review.
	Item ExtractedItem

	// Status is what happened to the item.
	Status OutcomeStatus

	// TaskID is the created task's id. Set only when created.
	TaskID string

	// MatchID is the duplicated existing task. Set only when skipped.
	MatchID string

	// Score is the similarity to the best match, when one was scored.
	Score float64

	// Err is the creation failure message. Set only when failed.
	Err string
}

// UploadSummary is the structured result of a full upload run.
// Skipped duplicates and creation failures are reported separately so
// callers can retry only genuine failures.
type UploadSummary struct {
	// Outcomes holds one entry per processed item, in original order.
	Outcomes []TaskOutcome

	// Decisions holds the duplicate-detection decisions, one per item.
	Decisions []Decision

	// Created is the number of tasks created.
	Created int

	// SkippedDuplicate is the number of items skipped as duplicates.
	SkippedDuplicate int

	// Failed is the number of creation failures.
	Failed int
}

// ReviewPrompt is the question a conversational driver renders for one
// low-confidence item.
type ReviewPrompt struct {
	// Position is the 1-based position within the review queue.
	Position int

	// Total is the number of items queued for review.
	Total int

	// Text is the item's current text, shown as the prefill.
	Text string

	// Confidence is the item's OCR confidence.
	Confidence float64
}
