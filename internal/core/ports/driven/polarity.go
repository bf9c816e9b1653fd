package driven

// PolarityScore is a general-purpose sentiment reading used by the
// matcher's sparse fallback pass.
type PolarityScore struct {
	// Polarity is the valence in [-1,1]; positive means positive sentiment.
	Polarity float64

	// Subjectivity is the opinion strength in [0,1]; 0 means the scorer
	// found nothing opinionated (or nothing it recognised at all).
	Subjectivity float64
}

// PolarityScorer computes a sentiment polarity and subjectivity estimate
// for a text using a lexicon-based method.
//
// Callers treat a failure as PolarityScore{} (zero polarity, zero
// subjectivity); a scorer error never aborts an analysis.
type PolarityScorer interface {
	// Score returns the sentiment reading for the text.
	Score(text string) (PolarityScore, error)
}
