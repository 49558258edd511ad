package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultSimilarityThreshold is the similarity above which two answers
// count as the same word.
const DefaultSimilarityThreshold = 0.8

// NormalizeAnswer canonicalizes an answer for fuzzy comparison: trim,
// lowercase, collapse internal whitespace, and strip diacritics via NFD
// decomposition.
func NormalizeAnswer(answer string) string {
	s := strings.ToLower(strings.TrimSpace(answer))
	s = strings.Join(strings.Fields(s), " ")

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LevenshteinDistance computes the edit distance between two strings
// using the standard dynamic-programming matrix.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		cur[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				cur[j] = prev[j-1]
			} else {
				cur[j] = min3(prev[j-1], cur[j-1], prev[j]) + 1
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Similarity scores two raw answers in [0, 1] after normalization.
func Similarity(answer1, answer2 string) float64 {
	n1 := NormalizeAnswer(answer1)
	n2 := NormalizeAnswer(answer2)
	if n1 == n2 {
		return 1
	}
	maxLen := len([]rune(n1))
	if l2 := len([]rune(n2)); l2 > maxLen {
		maxLen = l2
	}
	if maxLen == 0 {
		return 1
	}
	distance := LevenshteinDistance(n1, n2)
	return 1 - float64(distance)/float64(maxLen)
}

// AreSimilarAnswers reports whether two answers match at the threshold.
// Pass 0 to use DefaultSimilarityThreshold.
func AreSimilarAnswers(answer1, answer2 string, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return Similarity(answer1, answer2) >= threshold
}
