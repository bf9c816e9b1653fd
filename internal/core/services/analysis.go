package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
	"github.com/season-labs/fifthseason-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Matching pass weights.
const (
	weightExact          = 1.5
	weightFuzzyContains  = 0.8
	weightFuzzyContained = 0.6
	weightSemantic       = 0.4
)

// Polarity fallback thresholds and contributions.
const (
	fallbackMatchThreshold = 2
	minSubjectivity        = 0.3
	positivePolarity       = 0.2
	negativePolarity       = -0.2
	neutralPolarityBand    = 0.1
	neutralSubjectivity    = 0.5
)

// AnalysisService implements the emotion spectrum pipeline:
// tokenize, match (four passes), aggregate, attribute.
type AnalysisService struct {
	tokenizer driven.Tokenizer
	polarity  driven.PolarityScorer
	lexicon   *domain.Lexicon
}

// NewAnalysisService creates an analysis service. The polarity scorer is
// optional (can be nil); without it the fallback pass degrades to the
// zero-sum guarantee.
func NewAnalysisService(tokenizer driven.Tokenizer, polarity driven.PolarityScorer, lexicon *domain.Lexicon) *AnalysisService {
	if lexicon == nil {
		lexicon = domain.DefaultLexicon()
	}
	return &AnalysisService{
		tokenizer: tokenizer,
		polarity:  polarity,
		lexicon:   lexicon,
	}
}

// matchState carries the accumulator and attribution bookkeeping across
// the matching passes of one analysis.
type matchState struct {
	scores domain.RawScoreMap

	// totalMatches counts pass-1 and pass-2 hits plus the sum of pass-3
	// contributions, deciding whether the polarity fallback applies.
	totalMatches float64

	// attributed collects pass-1/pass-2 triggering tokens per category,
	// first-occurrence order, deduplicated within a category.
	attributed domain.KeywordMap
	seen       map[domain.Emotion]map[string]struct{}
}

func newMatchState() *matchState {
	return &matchState{
		scores:     make(domain.RawScoreMap),
		attributed: make(domain.KeywordMap),
		seen:       make(map[domain.Emotion]map[string]struct{}),
	}
}

// attribute records a token as contributing to a category.
func (m *matchState) attribute(e domain.Emotion, token string) {
	if m.seen[e] == nil {
		m.seen[e] = make(map[string]struct{})
	}
	if _, dup := m.seen[e][token]; dup {
		return
	}
	m.seen[e][token] = struct{}{}
	m.attributed[e] = append(m.attributed[e], token)
}

// Analyze runs the full pipeline over the text.
func (s *AnalysisService) Analyze(_ context.Context, text string) (*domain.AnalysisResult, error) {
	logger.Section("Emotion Analysis")

	result := &domain.AnalysisResult{
		EmotionWeights:  domain.WeightMap{},
		EmotionKeywords: domain.KeywordMap{},
		ProcessedWords:  []string{},
	}
	if strings.TrimSpace(text) == "" {
		logger.Debug("Empty input, returning empty result")
		return result, nil
	}

	tokens := s.tokenizer.Tokenize(text)
	result.ProcessedWords = tokens
	result.WordCount = len(tokens)
	logger.Debug("Tokens: %d", len(tokens))
	if len(tokens) == 0 {
		return result, nil
	}

	state := newMatchState()
	s.matchExact(state, tokens)
	s.matchFuzzy(state, tokens)
	s.matchSemantic(state, tokens)
	s.applyPolarityFallback(state, tokens)

	weights, dominant, diversity := s.normalize(state.scores)
	result.EmotionWeights = weights
	result.EmotionKeywords = state.attributed
	result.DominantEmotion = dominant
	result.EmotionDiversity = diversity

	logger.Info("Dominant: %s, diversity: %.3f, categories: %d", dominant, diversity, len(weights))
	return result, nil
}

// matchExact is pass 1: exact keyword equality, case-sensitive.
func (s *AnalysisService) matchExact(state *matchState, tokens []string) {
	hits := 0
	for _, token := range tokens {
		if e, ok := s.lexicon.CategoryOf(token); ok {
			state.scores[e] += weightExact
			state.attribute(e, token)
			hits++
		}
	}
	state.totalMatches += float64(hits)
	logger.Debug("Exact matches: %d", hits)
}

// matchFuzzy is pass 2: substring containment between token and keyword,
// bounded by a two-rune length tolerance. Only keywords of at least two
// runes participate. A single token/keyword pair contributes at most one
// of the two directions.
func (s *AnalysisService) matchFuzzy(state *matchState, tokens []string) {
	hits := 0
	for _, token := range tokens {
		tokenLen := runeLen(token)
		for _, e := range domain.AllEmotions() {
			for _, keyword := range s.lexicon.Keywords(e) {
				keywordLen := runeLen(keyword)
				if keywordLen < 2 {
					continue
				}
				switch {
				case strings.Contains(token, keyword) && tokenLen <= keywordLen+2:
					state.scores[e] += weightFuzzyContains
					state.attribute(e, token)
					hits++
				case strings.Contains(keyword, token) && keywordLen <= tokenLen+2:
					state.scores[e] += weightFuzzyContained
					state.attribute(e, token)
					hits++
				}
			}
		}
	}
	state.totalMatches += float64(hits)
	logger.Debug("Fuzzy matches: %d", hits)
}

// matchSemantic is pass 3: bidirectional containment against the weaker
// trigger rules. Many-to-many by design: one token may feed several
// categories, and several triggers of one category may each fire.
func (s *AnalysisService) matchSemantic(state *matchState, tokens []string) {
	var contribution float64
	for _, token := range tokens {
		for _, e := range domain.AllEmotions() {
			for _, trigger := range s.lexicon.Rules(e) {
				if strings.Contains(token, trigger) || strings.Contains(trigger, token) {
					state.scores[e] += weightSemantic
					contribution += weightSemantic
				}
			}
		}
	}
	state.totalMatches += contribution
	logger.Debug("Semantic contribution: %.1f", contribution)
}

// applyPolarityFallback is pass 4: a general sentiment reading applied
// only when lexicon matches are sparse, plus the zero-sum guarantee that
// every non-empty token sequence yields at least one non-zero category.
func (s *AnalysisService) applyPolarityFallback(state *matchState, tokens []string) {
	score, ok := s.scorePolarity(strings.Join(tokens, " "))

	if ok && state.totalMatches < fallbackMatchThreshold && score.Subjectivity > minSubjectivity {
		switch {
		case score.Polarity > positivePolarity:
			state.scores[domain.EmotionJoy] += score.Polarity * 1.5
			state.scores[domain.EmotionWarmth] += score.Polarity * 1.0
		case score.Polarity < negativePolarity:
			state.scores[domain.EmotionSorrow] += math.Abs(score.Polarity) * 1.5
			state.scores[domain.EmotionLoss] += math.Abs(score.Polarity) * 1.0
		case math.Abs(score.Polarity) <= neutralPolarityBand && score.Subjectivity > neutralSubjectivity:
			// Subjective but neutral text tends to carry mixed feelings.
			state.scores[domain.EmotionLonging] += 0.3
			state.scores[domain.EmotionCalm] += 0.2
		}
	}

	if state.scores.Sum() == 0 {
		if ok && score.Subjectivity > minSubjectivity {
			state.scores[domain.EmotionCalm] += 0.3
		} else {
			state.scores[domain.EmotionCalm] += 0.1
		}
	}
}

// scorePolarity calls the scorer with failure isolation. A missing or
// failing scorer reads as (zero score, not ok).
func (s *AnalysisService) scorePolarity(text string) (driven.PolarityScore, bool) {
	if s.polarity == nil {
		return driven.PolarityScore{}, false
	}
	score, err := s.polarity.Score(text)
	if err != nil {
		logger.Warn("Polarity scorer failed: %v", err)
		return driven.PolarityScore{}, false
	}
	logger.Debug("Polarity: %.3f, subjectivity: %.3f", score.Polarity, score.Subjectivity)
	return score, true
}

// normalize smooths raw scores with a square root, normalises them into
// a weight distribution, and derives the dominant emotion and diversity.
//
// Ties for the dominant emotion break by lexicon declaration order: the
// earliest-declared category among the maxima wins.
func (s *AnalysisService) normalize(raw domain.RawScoreMap) (domain.WeightMap, domain.Emotion, float64) {
	smoothed := make(domain.RawScoreMap, len(raw))
	var total float64
	for e, score := range raw {
		if score > 0 {
			v := math.Sqrt(score)
			smoothed[e] = v
			total += v
		}
	}
	if total == 0 {
		return domain.WeightMap{}, "", 0
	}

	weights := make(domain.WeightMap, len(smoothed))
	for e, v := range smoothed {
		weights[e] = v / total
	}

	var dominant domain.Emotion
	best := math.Inf(-1)
	for _, e := range domain.AllEmotions() {
		if w, ok := weights[e]; ok && w > best {
			dominant = e
			best = w
		}
	}

	return weights, dominant, diversity(weights)
}

// diversity is the Shannon entropy of the positive weights, normalised
// by log2 of the number of positive categories. Fewer than two positive
// categories yield 0.
func diversity(weights domain.WeightMap) float64 {
	var positive []float64
	for _, w := range weights {
		if w > 0 {
			positive = append(positive, w)
		}
	}
	if len(positive) <= 1 {
		return 0
	}

	var entropy float64
	for _, w := range positive {
		entropy -= w * math.Log2(w)
	}
	return entropy / math.Log2(float64(len(positive)))
}

// Diversity label thresholds.
const (
	diversityHigh     = 0.7
	diversityModerate = 0.4
)

// emptySummary is returned when no emotion was detected.
const emptySummary = "未检测到明显的情感倾向。"

// Summarize renders the summary sentence: dominant emotion with weight,
// up to two secondary emotions, and a qualitative diversity label.
func (s *AnalysisService) Summarize(result *domain.AnalysisResult) string {
	if result == nil || len(result.EmotionWeights) == 0 {
		return emptySummary
	}

	top := result.TopEmotions(3)
	parts := make([]string, 0, 3)

	parts = append(parts, fmt.Sprintf("主导情感是**%s**（权重: %.2f）",
		result.DominantEmotion, result.EmotionWeights[result.DominantEmotion]))

	if len(top) > 1 {
		secondary := make([]string, 0, 2)
		for _, ew := range top[1:] {
			secondary = append(secondary, fmt.Sprintf("%s(%.2f)", ew.Emotion, ew.Weight))
		}
		parts = append(parts, "次要情感包括: "+strings.Join(secondary, ", "))
	}

	switch {
	case result.EmotionDiversity > diversityHigh:
		parts = append(parts, "情感状态较为复杂多样")
	case result.EmotionDiversity > diversityModerate:
		parts = append(parts, "情感状态中等复杂")
	default:
		parts = append(parts, "情感状态相对单一")
	}

	return strings.Join(parts, "；") + "。"
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
