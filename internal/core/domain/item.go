package domain

// ItemKind classifies an extracted item by the journal section it came from.
type ItemKind string

// Available item kinds.
const (
	// KindPriority is an item from the "prepare/priority" section.
	KindPriority ItemKind = "priority"

	// KindTodo is an item from the regular to-do section.
	KindTodo ItemKind = "todo"
)

// IsValid returns true if the kind is recognised.
func (k ItemKind) IsValid() bool {
	return k == KindPriority || k == KindTodo
}

// String returns the string representation.
func (k ItemKind) String() string {
	return string(k)
}

// ExtractedItem is a single task candidate produced by OCR from a
// handwritten journal page.
type ExtractedItem struct {
	// Text is the extracted task text.
	Text string

	// Confidence is the OCR extraction confidence in [0,1].
	// It is supplied by the OCR engine and only ever changed by a
	// review session after human confirmation.
	Confidence float64

	// Kind is the journal section the item was extracted from.
	Kind ItemKind

	// Position is the item's index in the original extraction order.
	// Review replacements are matched by position, never by text.
	Position int
}

// ExistingTask is a task already present in the external task store.
type ExistingTask struct {
	// ID is the opaque identifier owned by the task store.
	ID string

	// Text is the task content used for similarity comparison.
	Text string
}

// NewTask describes a task to be created in the external task store.
type NewTask struct {
	// Text is the task content.
	Text string

	// Kind determines the priority the task is created with.
	Kind ItemKind

	// Due is a natural-language due date string (e.g. "today",
	// "2018-11-12"). Empty means the store default.
	Due string
}
