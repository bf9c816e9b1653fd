package mcp

import (
	"context"

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

	lastReq domain.StoryRequest
}

func (m *mockStoryService) BuildPrompt(req domain.StoryRequest) (string, error) {
	m.lastReq = req
	return m.prompt, m.err
}

func (m *mockStoryService) Generate(_ context.Context, req domain.StoryRequest) (*domain.Story, error) {
	m.lastReq = req
	return m.story, m.err
}

func (m *mockStoryService) GenerateVersions(_ context.Context, req domain.StoryRequest, _ int) ([]*domain.Story, error) {
	m.lastReq = req
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

func (m *mockHistoryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
