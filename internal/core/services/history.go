package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records analysis and story runs through a HistoryStore.
type HistoryService struct {
	store driven.HistoryStore
	now   func() time.Time
}

// NewHistoryService creates a history service backed by the given store.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// RecordAnalysis saves an analysis run.
func (s *HistoryService) RecordAnalysis(ctx context.Context, inputText string, result *domain.AnalysisResult) (domain.HistoryEntry, error) {
	if result == nil {
		return domain.HistoryEntry{}, domain.ErrInvalidInput
	}
	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Kind:      domain.EntryAnalysis,
		CreatedAt: s.now().UTC(),
		InputText: inputText,
		Analysis:  result,
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("saving analysis entry: %w", err)
	}
	return entry, nil
}

// RecordStory saves a generated story.
func (s *HistoryService) RecordStory(ctx context.Context, story *domain.Story) (domain.HistoryEntry, error) {
	if story == nil {
		return domain.HistoryEntry{}, domain.ErrInvalidInput
	}
	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Kind:      domain.EntryStory,
		CreatedAt: s.now().UTC(),
		Story:     story,
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("saving story entry: %w", err)
	}
	return entry, nil
}

// List returns entries newest-first, optionally filtered by kind.
func (s *HistoryService) List(ctx context.Context, kind domain.EntryKind, limit int) ([]domain.HistoryEntry, error) {
	entries, err := s.store.List(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// Get returns one entry by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("loading history entry: %w", err)
	}
	return entry, nil
}

// Export renders one entry in the requested format.
func (s *HistoryService) Export(ctx context.Context, id string, format driving.ExportFormat) (string, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading history entry: %w", err)
	}

	switch format {
	case driving.ExportJSON:
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshalling entry: %w", err)
		}
		return string(data), nil
	case driving.ExportMarkdown:
		return renderMarkdown(entry), nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}

// Delete removes one entry by ID.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// renderMarkdown formats an entry as a small Markdown report.
func renderMarkdown(entry domain.HistoryEntry) string {
	var b strings.Builder

	switch entry.Kind {
	case domain.EntryAnalysis:
		fmt.Fprintf(&b, "# 情感分析报告\n\n")
		fmt.Fprintf(&b, "- 时间: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "- 原文: %s\n\n", entry.InputText)
		if r := entry.Analysis; r != nil {
			if r.DominantEmotion != "" {
				fmt.Fprintf(&b, "主导情感: **%s**\n\n", r.DominantEmotion)
			}
			fmt.Fprintf(&b, "情感多样性: %.3f\n\n", r.EmotionDiversity)
			if len(r.EmotionWeights) > 0 {
				fmt.Fprintf(&b, "| 情感 | 权重 |\n|---|---|\n")
				for _, ew := range r.TopEmotions(-1) {
					fmt.Fprintf(&b, "| %s | %.2f |\n", ew.Emotion, ew.Weight)
				}
			}
		}
	case domain.EntryStory:
		fmt.Fprintf(&b, "# 记忆碎片故事\n\n")
		fmt.Fprintf(&b, "- 时间: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
		if st := entry.Story; st != nil {
			fmt.Fprintf(&b, "- 风格: %s | 基调: %s | 长度: %s\n", st.Style, st.Tone, st.Length)
			if len(st.Fragments) > 0 {
				fmt.Fprintf(&b, "- 记忆碎片: %s\n", strings.Join(st.Fragments, "、"))
			}
			fmt.Fprintf(&b, "\n%s\n", st.Text)
		}
	}

	return b.String()
}
