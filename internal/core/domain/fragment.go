package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Memory fragments are the short keyword phrases a story is woven from.
// They arrive as free-form user input and are cleaned and validated here
// before prompt construction.

const (
	// minFragmentRunes is the shortest fragment worth keeping.
	minFragmentRunes = 2

	// maxFragmentRunes is the length above which a fragment draws a warning.
	maxFragmentRunes = 50
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// dropRe matches every character that does not survive cleaning.
	// CJK ideographs, ASCII alphanumerics, whitespace and common CJK
	// punctuation are kept.
	dropRe = regexp.MustCompile(`[^\x{4e00}-\x{9fa5}a-zA-Z0-9\s，。！？；：“”‘’（）【】《》、]`)

	fragmentSepRe = regexp.MustCompile(`[,，\n;；、]`)
)

// CleanText collapses runs of whitespace and strips characters outside
// the supported script set (CJK, ASCII alphanumerics, CJK punctuation).
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	return dropRe.ReplaceAllString(text, "")
}

// SplitFragments splits free-form input into individual memory fragments
// on the common Chinese and ASCII list separators, dropping empties.
func SplitFragments(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := fragmentSepRe.Split(text, -1)
	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

// FragmentReport is the outcome of validating a fragment list.
type FragmentReport struct {
	// Valid is false when no usable fragment survived cleaning.
	Valid bool

	// Cleaned holds the fragments that passed validation, cleaned.
	Cleaned []string

	// Warnings describes fragments that were dropped or look suspicious.
	Warnings []string
}

// ValidateFragments cleans each fragment and reports which ones are
// usable. Fragments shorter than two runes after cleaning are dropped;
// overly long ones are kept but flagged.
func ValidateFragments(fragments []string) FragmentReport {
	report := FragmentReport{Valid: true}
	if len(fragments) == 0 {
		report.Valid = false
		report.Warnings = append(report.Warnings, "记忆碎片列表为空")
		return report
	}

	for i, fragment := range fragments {
		cleaned := CleanText(fragment)
		n := utf8.RuneCountInString(cleaned)
		switch {
		case n == 0:
			report.Warnings = append(report.Warnings, warnf("第%d个碎片为空或无效", i+1))
			continue
		case n < minFragmentRunes:
			report.Warnings = append(report.Warnings, warnf("第%d个碎片过短: %q", i+1, cleaned))
			continue
		case n > maxFragmentRunes:
			report.Warnings = append(report.Warnings, warnf("第%d个碎片过长，建议缩短: %q", i+1, TruncateText(cleaned, 30)))
		}
		report.Cleaned = append(report.Cleaned, cleaned)
	}

	if len(report.Cleaned) == 0 {
		report.Valid = false
		report.Warnings = append(report.Warnings, "没有有效的记忆碎片")
	}
	return report
}

// TruncateText shortens text to at most maxRunes runes, appending an
// ellipsis when anything was cut.
func TruncateText(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	const suffix = "..."
	cut := maxRunes - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + suffix
}

// TextSimilarity computes the character-level Jaccard similarity of two
// texts, in [0,1]. Used to spot near-duplicate story versions.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := runeSet(strings.ToLower(a))
	setB := runeSet(strings.ToLower(b))

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func warnf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
