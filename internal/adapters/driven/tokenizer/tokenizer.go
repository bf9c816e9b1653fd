// Package tokenizer provides a Tokenizer adapter using go-ego/gse for
// dictionary-based Chinese word segmentation.
package tokenizer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-ego/gse"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Tokenizer = (*Segmenter)(nil)

// minTokenRunes is the shortest token the matcher works with.
// Single-character segments carry too little signal and are dropped.
const minTokenRunes = 2

// nonTextRe matches every character outside the supported script set:
// CJK ideographs, ASCII letters, ASCII digits, and whitespace.
var nonTextRe = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-zA-Z0-9\s]`)

// Segmenter tokenizes Chinese text with the gse dictionary segmenter.
// Segmentation is deterministic for identical input. A Segmenter is safe
// for concurrent use once constructed.
type Segmenter struct {
	seg gse.Segmenter
	lex *domain.Lexicon
}

// New creates a Segmenter using gse's embedded Simplified Chinese
// dictionary and the lexicon's stopword set. Loading the dictionary is
// relatively slow, so construct once and reuse.
func New(lex *domain.Lexicon) (*Segmenter, error) {
	if lex == nil {
		lex = domain.DefaultLexicon()
	}
	s := &Segmenter{lex: lex}
	if err := s.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("loading segmentation dictionary: %w", err)
	}
	return s, nil
}

// Tokenize strips unsupported characters, segments the remainder, and
// filters out empty, short, and stopword tokens.
func (s *Segmenter) Tokenize(text string) []string {
	cleaned := nonTextRe.ReplaceAllString(text, "")
	tokens := []string{}
	if strings.TrimSpace(cleaned) == "" {
		return tokens
	}

	for _, word := range s.seg.Cut(cleaned, true) {
		word = strings.TrimSpace(word)
		if word == "" || utf8.RuneCountInString(word) < minTokenRunes {
			continue
		}
		if s.lex.IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
