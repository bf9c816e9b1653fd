package domain

import "time"

// EntryKind discriminates what a history entry records.
type EntryKind string

// Supported history entry kinds.
const (
	EntryAnalysis EntryKind = "analysis"
	EntryStory    EntryKind = "story"
)

// HistoryEntry is one saved analysis or story run. Exactly one of
// Analysis or Story is set, matching Kind.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Kind      EntryKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`

	// InputText is the analysed text for analysis entries, empty otherwise.
	InputText string `json:"input_text,omitempty"`

	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Story    *Story          `json:"story,omitempty"`
}
