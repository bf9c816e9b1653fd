package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
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

func newTestPorts() *Ports {
	return &Ports{
		Analysis: &mockAnalysisService{
			result: &domain.AnalysisResult{
				EmotionWeights:  domain.WeightMap{domain.EmotionJoy: 1.0},
				DominantEmotion: domain.EmotionJoy,
				WordCount:       2,
			},
			summary: "主导情感是**喜悦**",
		},
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingAnalysisService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.ready)
	assert.Equal(t, 80, updated.width)
	assert.Equal(t, 24, updated.height)
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_EnterAnalyzes(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.input.SetValue("今天很开心")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	updated := model.(*App)
	assert.True(t, updated.analyzing)
	require.NotNil(t, cmd)

	// Run the command and feed the message back through Update.
	msg := cmd()
	done, ok := msg.(analysisDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	model, _ = updated.Update(done)
	updated = model.(*App)
	assert.False(t, updated.analyzing)
	require.NotNil(t, updated.result)
	assert.Equal(t, domain.EmotionJoy, updated.result.DominantEmotion)
	assert.Equal(t, "主导情感是**喜悦**", updated.summary)
}

func TestApp_Update_EnterEmptyInputIsNoop(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, model.(*App).analyzing)
}

func TestApp_Update_AnalysisError(t *testing.T) {
	ports := &Ports{
		Analysis: &mockAnalysisService{err: errors.New("boom")},
	}
	app, _ := NewApp(ports)
	app.input.SetValue("测试")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done := cmd().(analysisDoneMsg)
	model, _ := app.Update(done)

	updated := model.(*App)
	assert.Error(t, updated.err)
	assert.Nil(t, updated.result)
}

func TestApp_Update_EscClearsState(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.input.SetValue("一些文字")
	app.result = &domain.AnalysisResult{}
	app.summary = "summary"

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	updated := model.(*App)
	assert.Empty(t, updated.input.Value())
	assert.Nil(t, updated.result)
	assert.Empty(t, updated.summary)
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Contains(t, app.View(), "Loading")
}

func TestApp_View_RendersSpectrum(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.result = &domain.AnalysisResult{
		EmotionWeights: domain.WeightMap{
			domain.EmotionJoy:    0.7,
			domain.EmotionWarmth: 0.3,
		},
		EmotionKeywords: domain.KeywordMap{
			domain.EmotionJoy: {"开心"},
		},
		DominantEmotion:  domain.EmotionJoy,
		EmotionDiversity: 0.88,
		WordCount:        3,
	}
	app.summary = "主导情感是**喜悦**"

	view := app.View()

	assert.Contains(t, view, "喜悦")
	assert.Contains(t, view, "温暖")
	assert.Contains(t, view, "开心")
	assert.Contains(t, view, "0.70")
	assert.Contains(t, view, "高频词 开心")
	assert.Contains(t, view, "主导情感是**喜悦**")
}

func TestTopFrequentWords(t *testing.T) {
	result := &domain.AnalysisResult{
		EmotionWeights: domain.WeightMap{
			domain.EmotionJoy:    0.6,
			domain.EmotionWarmth: 0.4,
		},
		EmotionKeywords: domain.KeywordMap{
			domain.EmotionJoy:    {"开心", "快乐"},
			domain.EmotionWarmth: {"温暖"},
		},
	}

	words := topFrequentWords(result, 2)

	assert.Equal(t, []string{"开心", "快乐"}, words)
}

func TestApp_View_EmptyResult(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.result = &domain.AnalysisResult{}

	assert.Contains(t, app.View(), "未检测到明显的情感倾向")
}
