package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/season-labs/fifthseason-cli/internal/adapters/driving/tui/styles"
	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// barCells is the width of a spectrum weight bar.
const barCells = 24

// App is the interactive emotion spectrum view following the Elm
// architecture. It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	input textinput.Model

	// result is the last analysis, nil before the first run.
	result *domain.AnalysisResult

	// summary is the rendered summary line for result.
	summary string

	analyzing bool
	err       error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// analysisDoneMsg carries the outcome of an analysis command.
type analysisDoneMsg struct {
	result  *domain.AnalysisResult
	summary string
	err     error
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "输入一段文字，回车分析情感……"
	ti.CharLimit = 500
	ti.Focus()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		input:  ti,
	}, nil
}

// WithContext sets the context used for analysis calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case analysisDoneMsg:
		a.analyzing = false
		a.result = msg.result
		a.summary = msg.summary
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.input.Value() == "" {
				return a, tea.Quit
			}
		case "esc":
			a.input.SetValue("")
			a.result = nil
			a.summary = ""
			a.err = nil
			return a, nil
		case "enter":
			text := strings.TrimSpace(a.input.Value())
			if text == "" || a.analyzing {
				return a, nil
			}
			a.analyzing = true
			a.err = nil
			return a, a.analyzeCmd(text)
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// analyzeCmd runs the analysis off the update loop.
func (a *App) analyzeCmd(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Analysis.Analyze(a.ctx, text)
		if err != nil {
			return analysisDoneMsg{err: err}
		}

		if a.ports.History != nil {
			// Recording failures should not disturb the view.
			_, _ = a.ports.History.RecordAnalysis(a.ctx, text, result) //nolint:errcheck
		}

		return analysisDoneMsg{
			result:  result,
			summary: a.ports.Analysis.Summarize(result),
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render("情感光谱"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n\n")

	switch {
	case a.analyzing:
		b.WriteString(a.styles.Muted.Render("分析中……"))
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("分析失败: " + a.err.Error()))
		b.WriteString("\n")
	case a.result != nil:
		b.WriteString(a.renderSpectrum())
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter 分析 · esc 清空 · ctrl+c 退出"))
	return b.String()
}

// renderSpectrum renders the weight bars, keywords, and summary.
func (a *App) renderSpectrum() string {
	if len(a.result.EmotionWeights) == 0 {
		return a.styles.Muted.Render("未检测到明显的情感倾向。") + "\n"
	}

	var b strings.Builder
	for _, ew := range a.result.TopEmotions(len(a.result.EmotionWeights)) {
		label := a.styles.Normal.Render(string(ew.Emotion))
		if ew.Emotion == a.result.DominantEmotion {
			label = a.styles.Dominant.Render(string(ew.Emotion))
		}

		filled := int(ew.Weight*barCells + 0.5)
		if filled > barCells {
			filled = barCells
		}
		bar := a.styles.Bar.Render(strings.Repeat("█", filled)) +
			a.styles.Muted.Render(strings.Repeat("░", barCells-filled))

		b.WriteString(fmt.Sprintf("  %s  %s %.2f\n", label, bar, ew.Weight))

		if words := a.result.EmotionKeywords[ew.Emotion]; len(words) > 0 {
			sorted := append([]string(nil), words...)
			sort.Strings(sorted)
			b.WriteString(a.styles.Muted.Render("      " + strings.Join(sorted, "、")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(
		fmt.Sprintf("多样性 %.2f · 词数 %d", a.result.EmotionDiversity, a.result.WordCount)))
	b.WriteString("\n")
	if words := topFrequentWords(a.result, 6); len(words) > 0 {
		b.WriteString(a.styles.Muted.Render("高频词 " + strings.Join(words, "、")))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Subtitle.Render(a.summary))
	b.WriteString("\n")
	return b.String()
}

// topFrequentWords returns up to n attributed words ordered by their
// weighted frequency, highest first. Equal frequencies order
// alphabetically so the line is stable between renders.
func topFrequentWords(result *domain.AnalysisResult, n int) []string {
	freq := domain.FrequencyTable(result)
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}
