package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

// fakeHistoryStore records saved entries and serves scripted reads.
type fakeHistoryStore struct {
	saved   []domain.HistoryEntry
	entries []domain.HistoryEntry
	entry   domain.HistoryEntry
	err     error
	cleared bool
}

func (f *fakeHistoryStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, entry)
	return nil
}

func (f *fakeHistoryStore) List(_ context.Context, _ domain.EntryKind, _ int) ([]domain.HistoryEntry, error) {
	return f.entries, f.err
}

func (f *fakeHistoryStore) Get(_ context.Context, _ string) (domain.HistoryEntry, error) {
	return f.entry, f.err
}

func (f *fakeHistoryStore) Delete(_ context.Context, _ string) error { return f.err }

func (f *fakeHistoryStore) Clear(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = true
	return nil
}

func (f *fakeHistoryStore) Close() error { return nil }

func analysisEntry() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        "an-1",
		Kind:      domain.EntryAnalysis,
		CreatedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		InputText: "今天很开心",
		Analysis: &domain.AnalysisResult{
			EmotionWeights: domain.WeightMap{
				domain.EmotionJoy:    0.7,
				domain.EmotionWarmth: 0.3,
			},
			DominantEmotion:  domain.EmotionJoy,
			EmotionDiversity: 0.88,
			WordCount:        2,
		},
	}
}

func storyEntry() domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        "st-1",
		Kind:      domain.EntryStory,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Story: &domain.Story{
			ID:        "story-1",
			Text:      "那是一个温暖的午后。",
			Fragments: []string{"老照片", "夏天的海边"},
			Style:     domain.StyleNovel,
			Tone:      domain.EmotionWarmth,
			Length:    domain.LengthMedium,
		},
	}
}

func TestHistoryService_RecordAnalysis(t *testing.T) {
	store := &fakeHistoryStore{}
	svc := NewHistoryService(store)

	entry, err := svc.RecordAnalysis(context.Background(), "今天很开心", analysisEntry().Analysis)

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, domain.EntryAnalysis, entry.Kind)
	assert.Equal(t, "今天很开心", entry.InputText)
	assert.False(t, entry.CreatedAt.IsZero())
	require.Len(t, store.saved, 1)
	assert.Equal(t, entry.ID, store.saved[0].ID)
}

func TestHistoryService_RecordAnalysis_NilResult(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{})

	_, err := svc.RecordAnalysis(context.Background(), "text", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_RecordStory(t *testing.T) {
	store := &fakeHistoryStore{}
	svc := NewHistoryService(store)

	entry, err := svc.RecordStory(context.Background(), storyEntry().Story)

	require.NoError(t, err)
	assert.Equal(t, domain.EntryStory, entry.Kind)
	assert.NotNil(t, entry.Story)
	require.Len(t, store.saved, 1)
}

func TestHistoryService_RecordStory_NilStory(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{})

	_, err := svc.RecordStory(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_Record_StoreFailure(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{err: errors.New("disk full")})

	_, err := svc.RecordAnalysis(context.Background(), "text", analysisEntry().Analysis)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving analysis entry")
}

func TestHistoryService_List(t *testing.T) {
	store := &fakeHistoryStore{entries: []domain.HistoryEntry{analysisEntry(), storyEntry()}}
	svc := NewHistoryService(store)

	entries, err := svc.List(context.Background(), "", 10)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryService_Get(t *testing.T) {
	store := &fakeHistoryStore{entry: analysisEntry()}
	svc := NewHistoryService(store)

	entry, err := svc.Get(context.Background(), "an-1")

	require.NoError(t, err)
	assert.Equal(t, "an-1", entry.ID)
}

func TestHistoryService_Export_JSON(t *testing.T) {
	store := &fakeHistoryStore{entry: analysisEntry()}
	svc := NewHistoryService(store)

	out, err := svc.Export(context.Background(), "an-1", driving.ExportJSON)

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "an-1"`)
	assert.Contains(t, out, `"dominant_emotion": "喜悦"`)
}

func TestHistoryService_Export_MarkdownAnalysis(t *testing.T) {
	store := &fakeHistoryStore{entry: analysisEntry()}
	svc := NewHistoryService(store)

	out, err := svc.Export(context.Background(), "an-1", driving.ExportMarkdown)

	require.NoError(t, err)
	assert.Contains(t, out, "# 情感分析报告")
	assert.Contains(t, out, "主导情感: **喜悦**")
	assert.Contains(t, out, "| 情感 | 权重 |")
	assert.Contains(t, out, "| 喜悦 | 0.70 |")
}

func TestHistoryService_Export_MarkdownStory(t *testing.T) {
	store := &fakeHistoryStore{entry: storyEntry()}
	svc := NewHistoryService(store)

	out, err := svc.Export(context.Background(), "st-1", driving.ExportMarkdown)

	require.NoError(t, err)
	assert.Contains(t, out, "# 记忆碎片故事")
	assert.Contains(t, out, "记忆碎片: 老照片、夏天的海边")
	assert.Contains(t, out, "那是一个温暖的午后。")
}

func TestHistoryService_Export_UnknownFormat(t *testing.T) {
	store := &fakeHistoryStore{entry: analysisEntry()}
	svc := NewHistoryService(store)

	_, err := svc.Export(context.Background(), "an-1", "yaml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_Delete(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{})

	assert.NoError(t, svc.Delete(context.Background(), "an-1"))
}

func TestHistoryService_Delete_StoreFailure(t *testing.T) {
	svc := NewHistoryService(&fakeHistoryStore{err: domain.ErrNotFound})

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Clear(t *testing.T) {
	store := &fakeHistoryStore{}
	svc := NewHistoryService(store)

	require.NoError(t, svc.Clear(context.Background()))
	assert.True(t, store.cleared)
}
