package cli

import (
	"context"
	"time"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	result  *domain.AnalysisResult
	summary string
	err     error
}

func (m *mockAnalysisService) Analyze(_ context.Context, _ string) (*domain.AnalysisResult, error) {
	return m.result, m.err
}

func (m *mockAnalysisService) Summarize(_ *domain.AnalysisResult) string {
	return m.summary
}

// mockStoryService is a mock implementation of driving.StoryService.
type mockStoryService struct {
	story   *domain.Story
	stories []*domain.Story
	prompt  string
	err     error

	lastReq      domain.StoryRequest
	lastVersions int
}

func (m *mockStoryService) BuildPrompt(req domain.StoryRequest) (string, error) {
	m.lastReq = req
	return m.prompt, m.err
}

func (m *mockStoryService) Generate(_ context.Context, req domain.StoryRequest) (*domain.Story, error) {
	m.lastReq = req
	return m.story, m.err
}

func (m *mockStoryService) GenerateVersions(_ context.Context, req domain.StoryRequest, n int) ([]*domain.Story, error) {
	m.lastReq = req
	m.lastVersions = n
	return m.stories, m.err
}

func (m *mockStoryService) Enhance(_ context.Context, _ string, _ domain.EnhancementKind) (*domain.Story, error) {
	return m.story, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entry    domain.HistoryEntry
	entries  []domain.HistoryEntry
	exported string
	err      error

	recordedAnalyses int
	recordedStories  int
	deletedID        string
	cleared          bool
}

func (m *mockHistoryService) RecordAnalysis(_ context.Context, _ string, _ *domain.AnalysisResult) (domain.HistoryEntry, error) {
	m.recordedAnalyses++
	return m.entry, m.err
}

func (m *mockHistoryService) RecordStory(_ context.Context, _ *domain.Story) (domain.HistoryEntry, error) {
	m.recordedStories++
	return m.entry, m.err
}

func (m *mockHistoryService) List(_ context.Context, _ domain.EntryKind, _ int) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (domain.HistoryEntry, error) {
	return m.entry, m.err
}

func (m *mockHistoryService) Export(_ context.Context, _ string, _ driving.ExportFormat) (string, error) {
	return m.exported, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

// mockConfigStore is an in-memory driven.ConfigStore for tests.
type mockConfigStore struct {
	data map[string]any
	err  error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.data[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetBool(key string) bool {
	if b, ok := m.data[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys
}

func (m *mockConfigStore) Path() string {
	return "/tmp/fifthseason-test/config.toml"
}

// sampleResult is a typical analysis result used across command tests.
func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		EmotionWeights: domain.WeightMap{
			domain.EmotionJoy:    0.7,
			domain.EmotionWarmth: 0.3,
		},
		EmotionKeywords: domain.KeywordMap{
			domain.EmotionJoy: {"开心"},
		},
		DominantEmotion:  domain.EmotionJoy,
		EmotionDiversity: 0.88,
		ProcessedWords:   []string{"今天", "开心"},
		WordCount:        2,
	}
}

// sampleStory is a typical generated story used across command tests.
func sampleStory() *domain.Story {
	return &domain.Story{
		ID:          "story-1",
		Text:        "那是一个温暖的午后。",
		Fragments:   []string{"老照片"},
		Style:       domain.StyleNovel,
		Tone:        domain.EmotionWarmth,
		Length:      domain.LengthMedium,
		Seed:        42,
		Model:       "openai",
		RuneCount:   10,
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// setupTestServices swaps all service vars for mocks and returns a
// restore func.
func setupTestServices() func() {
	oldAnalysis := analysisService
	oldStory := storyService
	oldHistory := historyService
	oldConfig := configStore

	analysisService = &mockAnalysisService{result: sampleResult(), summary: "主导情感是**喜悦**（权重: 0.70）"}
	storyService = &mockStoryService{story: sampleStory(), prompt: "prompt"}
	historyService = &mockHistoryService{}
	configStore = newMockConfigStore()

	return func() {
		analysisService = oldAnalysis
		storyService = oldStory
		historyService = oldHistory
		configStore = oldConfig
	}
}
