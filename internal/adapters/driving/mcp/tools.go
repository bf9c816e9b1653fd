package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_emotion tool.
type AnalyzeInput struct {
	Text string `json:"text" jsonschema:"the short Chinese text to analyze"`
}

// AnalyzeOutput is the output schema for the analyze_emotion tool.
type AnalyzeOutput struct {
	Weights   map[string]float64  `json:"emotion_weights"`
	Keywords  map[string][]string `json:"emotion_keywords,omitempty"`
	Dominant  string              `json:"dominant_emotion,omitempty"`
	Diversity float64             `json:"emotion_diversity"`
	WordCount int                 `json:"word_count"`
	Summary   string              `json:"summary"`
}

// GenerateStoryInput is the input schema for the generate_story tool.
type GenerateStoryInput struct {
	Fragments []string `json:"fragments" jsonschema:"memory fragments to weave into the story"`
	Style     string   `json:"style,omitempty" jsonschema:"story style: 小说风格 (default), 电影桥段, 诗意散文, 日记体, 回忆录, or 梦境叙述"`
	Tone      string   `json:"tone,omitempty" jsonschema:"emotional tone, e.g. 温暖 (default), 思念, 平静"`
	Length    string   `json:"length,omitempty" jsonschema:"story length: 短, 中等 (default), or 长"`
}

// GenerateStoryOutput is the output schema for the generate_story tool.
type GenerateStoryOutput struct {
	Story     string `json:"story"`
	Style     string `json:"story_style"`
	Tone      string `json:"emotional_tone"`
	Length    string `json:"story_length"`
	Seed      int    `json:"seed"`
	Model     string `json:"model"`
	WordCount int    `json:"word_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_emotion",
		Description: "Analyze the emotional spectrum of a short Chinese text",
	}, s.handleAnalyze)

	if s.ports.Story != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_story",
			Description: "Generate a story from memory fragments with a chosen style, tone, and length",
		}, s.handleGenerateStory)
	}
}

// handleAnalyze handles the analyze_emotion tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	result, err := s.ports.Analysis.Analyze(ctx, input.Text)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		Weights:   make(map[string]float64, len(result.EmotionWeights)),
		Dominant:  string(result.DominantEmotion),
		Diversity: result.EmotionDiversity,
		WordCount: result.WordCount,
		Summary:   s.ports.Analysis.Summarize(result),
	}
	for emotion, weight := range result.EmotionWeights {
		output.Weights[string(emotion)] = weight
	}
	if len(result.EmotionKeywords) > 0 {
		output.Keywords = make(map[string][]string, len(result.EmotionKeywords))
		for emotion, words := range result.EmotionKeywords {
			output.Keywords[string(emotion)] = words
		}
	}

	if s.ports.History != nil {
		// Recording failures should not fail the tool call.
		_, _ = s.ports.History.RecordAnalysis(ctx, input.Text, result) //nolint:errcheck
	}

	return nil, output, nil
}

// handleGenerateStory handles the generate_story tool invocation.
func (s *Server) handleGenerateStory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateStoryInput,
) (*mcp.CallToolResult, GenerateStoryOutput, error) {
	req := domain.StoryRequest{
		Fragments: input.Fragments,
		Style:     domain.StoryStyle(input.Style),
		Tone:      domain.Emotion(input.Tone),
		Length:    domain.StoryLength(input.Length),
	}

	story, err := s.ports.Story.Generate(ctx, req)
	if err != nil {
		return nil, GenerateStoryOutput{}, err
	}

	if s.ports.History != nil {
		_, _ = s.ports.History.RecordStory(ctx, story) //nolint:errcheck
	}

	return nil, GenerateStoryOutput{
		Story:     story.Text,
		Style:     string(story.Style),
		Tone:      string(story.Tone),
		Length:    string(story.Length),
		Seed:      story.Seed,
		Model:     story.Model,
		WordCount: story.RuneCount,
	}, nil
}
