package domain

import (
	"time"
	"unicode/utf8"
)

// StoryStyle selects the narrative form a story is written in.
type StoryStyle string

// Supported narrative styles.
const (
	StyleNovel  StoryStyle = "小说风格"
	StyleFilm   StoryStyle = "电影桥段"
	StyleProse  StoryStyle = "诗意散文"
	StyleDiary  StoryStyle = "日记体"
	StyleMemoir StoryStyle = "回忆录"
	StyleDream  StoryStyle = "梦境叙述"
)

// StoryStyles returns all supported styles in display order.
func StoryStyles() []StoryStyle {
	return []StoryStyle{StyleNovel, StyleFilm, StyleProse, StyleDiary, StyleMemoir, StyleDream}
}

// StoryLength selects the target length band for a story.
type StoryLength string

// Supported length bands.
const (
	LengthShort  StoryLength = "短"
	LengthMedium StoryLength = "中等"
	LengthLong   StoryLength = "长"
)

// Guide returns the character-count guidance for the length band.
func (l StoryLength) Guide() string {
	switch l {
	case LengthShort:
		return "200-300字"
	case LengthLong:
		return "800-1000字"
	default:
		return "400-600字"
	}
}

// toneDescriptions maps an emotion category to the tonal guidance used
// in story prompts.
var toneDescriptions = map[Emotion]string{
	EmotionWarmth:       "温馨感人",
	EmotionSorrow:       "淡淡忧伤",
	EmotionLonging:      "深深思念",
	EmotionAnticipation: "充满希望",
	EmotionLoss:         "略带失落",
	EmotionCalm:         "宁静安详",
	EmotionJoy:          "欢快愉悦",
	EmotionHelplessness: "迷茫困顿",
}

// ToneDescription returns the prompt wording for an emotional tone,
// falling back to the warm tone for unknown categories.
func ToneDescription(tone Emotion) string {
	if desc, ok := toneDescriptions[tone]; ok {
		return desc
	}
	return toneDescriptions[EmotionWarmth]
}

// EnhancementKind selects how an existing story should be reworked.
type EnhancementKind string

// Supported enhancement kinds.
const (
	EnhanceDetail  EnhancementKind = "细节丰富"
	EnhanceEmotion EnhancementKind = "情感深化"
	EnhanceImagery EnhancementKind = "意境提升"
	EnhancePlot    EnhancementKind = "情节完善"
)

// enhancementInstructions maps each kind to its rewrite instruction.
var enhancementInstructions = map[EnhancementKind]string{
	EnhanceDetail:  "请为这个故事添加更多生动的细节描写，包括环境、人物表情、动作等，使故事更加立体丰满。",
	EnhanceEmotion: "请深化故事中的情感表达，让人物的内心世界更加丰富，情感变化更加细腻。",
	EnhanceImagery: "请提升故事的意境和文学性，使用更优美的语言和更深刻的意象。",
	EnhancePlot:    "请完善故事的情节结构，添加必要的转折和高潮，使故事更加引人入胜。",
}

// EnhancementInstruction returns the rewrite instruction for a kind,
// defaulting to detail enrichment for unknown kinds.
func EnhancementInstruction(kind EnhancementKind) string {
	if instr, ok := enhancementInstructions[kind]; ok {
		return instr
	}
	return enhancementInstructions[EnhanceDetail]
}

// StoryRequest describes one story to generate.
type StoryRequest struct {
	// Fragments are the memory fragments to weave into the story.
	Fragments []string

	// Style is the narrative form. Defaults to StyleNovel.
	Style StoryStyle

	// Tone is the emotional tone category. Defaults to EmotionWarmth.
	Tone Emotion

	// Length is the target length band. Defaults to LengthMedium.
	Length StoryLength

	// CustomRequirements are appended verbatim to the prompt, if any.
	CustomRequirements string
}

// Normalize fills zero-valued fields with their defaults and validates
// the fragments. It returns ErrNoFragments when nothing usable remains.
func (r *StoryRequest) Normalize() error {
	report := ValidateFragments(r.Fragments)
	if !report.Valid {
		return ErrNoFragments
	}
	r.Fragments = report.Cleaned

	if r.Style == "" {
		r.Style = StyleNovel
	}
	if r.Tone == "" {
		r.Tone = EmotionWarmth
	}
	if r.Length == "" {
		r.Length = LengthMedium
	}
	return nil
}

// Story is one generated story with its provenance.
type Story struct {
	ID        string      `json:"id"`
	Text      string      `json:"story"`
	Fragments []string    `json:"memory_fragments"`
	Style     StoryStyle  `json:"story_style"`
	Tone      Emotion     `json:"emotional_tone"`
	Length    StoryLength `json:"story_length"`

	// Version numbers multi-version runs starting at 1; 0 for single runs.
	Version int `json:"version,omitempty"`

	// Seed is the generation seed that produced this story.
	Seed int `json:"seed"`

	// Model is the backend model name.
	Model string `json:"model"`

	// RuneCount is the story length in runes.
	RuneCount int `json:"word_count"`

	GeneratedAt time.Time `json:"generated_at"`
}

// NewStory assembles a Story from generated text and its request.
func NewStory(id, text, model string, seed int, req StoryRequest) *Story {
	return &Story{
		ID:        id,
		Text:      text,
		Fragments: req.Fragments,
		Style:     req.Style,
		Tone:      req.Tone,
		Length:    req.Length,
		Seed:      seed,
		Model:     model,
		RuneCount: utf8.RuneCountInString(text),
	}
}
