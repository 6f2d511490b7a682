// Package ocr parses the JSON payloads produced by the OCR engines
// into ordered extracted items. The payload format is owned by the OCR
// collaborator; this package only reads it.
package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// Field is a single extracted value with its OCR confidence.
type Field struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Entry is one task entry in a payload section. Older payloads emit
// bare strings; newer ones emit objects with a per-entry confidence
// and either a "task" or an "item" key depending on the section.
type Entry struct {
	Text       string
	Confidence float64
}

// UnmarshalJSON accepts both the bare-string and the object form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		// Bare strings carry no confidence score; treat them as certain.
		e.Text = text
		e.Confidence = 1.0
		return nil
	}

	var obj struct {
		Task       string   `json:"task"`
		Item       string   `json:"item"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: entry is neither string nor object: %v", domain.ErrInvalidInput, err)
	}

	e.Text = obj.Task
	if e.Text == "" {
		e.Text = obj.Item
	}
	e.Confidence = 1.0
	if obj.Confidence != nil {
		e.Confidence = *obj.Confidence
	}
	return nil
}

// Payload is an OCR result document for one journal page.
type Payload struct {
	Date            *Field  `json:"date"`
	PreparePriority []Entry `json:"prepare_priority"`
	ToDo            []Entry `json:"to_do"`
}

// Parse decodes a payload document.
func Parse(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing OCR payload: %w", err)
	}
	return &p, nil
}

// Items returns the payload's task entries as extracted items: priority
// entries first, then to-dos, with sequential source positions and
// blank entries dropped.
func (p *Payload) Items() []domain.ExtractedItem {
	var items []domain.ExtractedItem
	position := 0

	add := func(entries []Entry, kind domain.ItemKind) {
		for _, e := range entries {
			text := strings.TrimSpace(e.Text)
			if text == "" {
				continue
			}
			items = append(items, domain.ExtractedItem{
				Text:       text,
				Confidence: e.Confidence,
				Kind:       kind,
				Position:   position,
			})
			position++
		}
	}

	add(p.PreparePriority, domain.KindPriority)
	add(p.ToDo, domain.KindTodo)
	return items
}

// Due returns the page's due date string for task creation, or "today"
// when the payload has no usable date.
func (p *Payload) Due() string {
	if p.Date == nil || strings.TrimSpace(p.Date.Value) == "" {
		return "today"
	}
	return strings.TrimSpace(p.Date.Value)
}
