package domain

import "sort"

// Emotion is one of the fixed emotion categories the engine can detect.
// The canonical values are the Simplified Chinese labels used throughout
// the lexicon and in user-facing output.
type Emotion string

// The closed set of emotion categories. Declaration order matters: it is
// the tie-break order for dominant-emotion selection when two categories
// end up with exactly equal weight.
const (
	EmotionJoy          Emotion = "喜悦"
	EmotionWarmth       Emotion = "温暖"
	EmotionLonging      Emotion = "思念"
	EmotionLoss         Emotion = "失落"
	EmotionSorrow       Emotion = "忧伤"
	EmotionAnticipation Emotion = "期待"
	EmotionHelplessness Emotion = "无助"
	EmotionCalm         Emotion = "平静"
)

// AllEmotions returns every emotion category in declaration order.
// The returned slice is a fresh copy; callers may modify it.
func AllEmotions() []Emotion {
	return []Emotion{
		EmotionJoy,
		EmotionWarmth,
		EmotionLonging,
		EmotionLoss,
		EmotionSorrow,
		EmotionAnticipation,
		EmotionHelplessness,
		EmotionCalm,
	}
}

// Valid reports whether e is one of the known emotion categories.
func (e Emotion) Valid() bool {
	switch e {
	case EmotionJoy, EmotionWarmth, EmotionLonging, EmotionLoss,
		EmotionSorrow, EmotionAnticipation, EmotionHelplessness, EmotionCalm:
		return true
	}
	return false
}

// RawScoreMap accumulates unnormalised emotion scores during matching.
// A category absent from the map is implicitly zero.
type RawScoreMap map[Emotion]float64

// Sum returns the total of all accumulated scores.
func (m RawScoreMap) Sum() float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// WeightMap maps emotion categories to normalised weights in [0,1].
// A non-empty map always sums to 1.0 within floating tolerance.
type WeightMap map[Emotion]float64

// KeywordMap maps emotion categories to the source tokens that
// contributed to them, in first-occurrence order.
type KeywordMap map[Emotion][]string

// AnalysisResult is the complete outcome of analysing one text.
// It is created fresh per call and never mutated afterwards.
type AnalysisResult struct {
	// EmotionWeights is the normalised weight distribution.
	// Empty when the input produced no tokens.
	EmotionWeights WeightMap `json:"emotion_weights"`

	// EmotionKeywords attributes contributing tokens to each category.
	EmotionKeywords KeywordMap `json:"emotion_keywords"`

	// DominantEmotion is the category with the maximum weight.
	// Empty when EmotionWeights is empty.
	DominantEmotion Emotion `json:"dominant_emotion,omitempty"`

	// EmotionDiversity is the normalised Shannon entropy of the weight
	// distribution, in [0,1]. Zero when fewer than two categories carry weight.
	EmotionDiversity float64 `json:"emotion_diversity"`

	// ProcessedWords is the token sequence the scores were computed from.
	ProcessedWords []string `json:"processed_words"`

	// WordCount is len(ProcessedWords).
	WordCount int `json:"word_count"`
}

// TopEmotions returns up to n (emotion, weight) pairs sorted by weight
// descending. Equal weights are ordered by category declaration order so
// the output is deterministic.
func (r *AnalysisResult) TopEmotions(n int) []EmotionWeight {
	ranked := rankWeights(r.EmotionWeights)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// EmotionWeight is a single (category, weight) pair.
type EmotionWeight struct {
	Emotion Emotion `json:"emotion"`
	Weight  float64 `json:"weight"`
}

// rankWeights sorts a weight map into a deterministic descending order.
func rankWeights(weights WeightMap) []EmotionWeight {
	order := make(map[Emotion]int, len(weights))
	for i, e := range AllEmotions() {
		order[e] = i
	}

	ranked := make([]EmotionWeight, 0, len(weights))
	for e, w := range weights {
		ranked = append(ranked, EmotionWeight{Emotion: e, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		// Ties break on category declaration order.
		return order[a.Emotion] < order[b.Emotion]
	})
	return ranked
}

// FrequencyTable synthesises a weighted word-frequency table from a
// result's weights and keyword attribution, for word-cloud style
// rendering. Each occurrence of a word under a category contributes
// weight*10 to that word's frequency.
func FrequencyTable(r *AnalysisResult) map[string]float64 {
	freq := make(map[string]float64)
	for emotion, words := range r.EmotionKeywords {
		weight := r.EmotionWeights[emotion]
		for _, w := range words {
			freq[w] += weight * 10
		}
	}
	return freq
}
