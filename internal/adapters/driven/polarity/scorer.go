// Package polarity provides a PolarityScorer adapter backed by govader,
// a Go port of the VADER lexicon-based sentiment scorer.
package polarity

import (
	"fmt"
	"sync"

	"github.com/jonreiter/govader"

	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.PolarityScorer = (*Scorer)(nil)

// Scorer wraps govader's SentimentIntensityAnalyzer.
//
// VADER's lexicon is English; tokens it does not recognise read as
// neutral, so pure Chinese input scores polarity 0 with subjectivity 0
// and the caller's zero-sum guarantee takes over. That degradation is
// exactly what the fallback pass expects from a sparse scorer.
type Scorer struct {
	mu  sync.Mutex
	sia *govader.SentimentIntensityAnalyzer
}

// New creates a Scorer with a fresh VADER analyzer.
func New() *Scorer {
	return &Scorer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity (VADER compound, in [-1,1]) and a
// subjectivity estimate (the non-neutral token mass, in [0,1]).
// A panic inside the scorer is recovered and surfaced as an error so a
// malformed input can never abort an analysis.
func (s *Scorer) Score(text string) (score driven.PolarityScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			score = driven.PolarityScore{}
			err = fmt.Errorf("polarity scorer panic: %v", r)
		}
	}()

	s.mu.Lock()
	scores := s.sia.PolarityScores(text)
	s.mu.Unlock()

	// An empty reading (no token classified at all) must not be mistaken
	// for "everything is opinionated".
	if scores.Positive+scores.Negative+scores.Neutral == 0 {
		return driven.PolarityScore{}, nil
	}

	return driven.PolarityScore{
		Polarity:     scores.Compound,
		Subjectivity: clamp01(1 - scores.Neutral),
	}, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
