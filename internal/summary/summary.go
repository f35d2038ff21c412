// Package summary produces short extractive summaries by keeping the
// sentences whose words occur most often in the source text.
package summary

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hvdyinv4688hbv/bookly/internal/nlp"
)

// ErrNoContent means the text had nothing worth summarizing.
var ErrNoContent = errors.New("not enough content to summarize")

// DefaultSentences is the summary length used when the caller passes a
// non-positive count.
const DefaultSentences = 3

// Summarize returns the numSentences strongest sentences of text,
// joined in strength order. Sentence strength is the sum of the
// normalized frequencies of its significant words.
func Summarize(analyzer nlp.Analyzer, text string, numSentences int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoContent
	}
	if numSentences <= 0 {
		numSentences = DefaultSentences
	}

	analysis, err := analyzer.Analyze(text)
	if err != nil {
		return "", fmt.Errorf("analyze text: %w", err)
	}

	freq := make(map[string]int)
	maxFreq := 0
	for _, tok := range analysis.Tokens {
		if nlp.IsStopword(tok.Text) || nlp.IsPunctTag(tok.Tag) {
			continue
		}
		freq[tok.Text]++
		if freq[tok.Text] > maxFreq {
			maxFreq = freq[tok.Text]
		}
	}
	if maxFreq == 0 {
		return "", ErrNoContent
	}

	type scored struct {
		sentence string
		strength float64
	}
	ranked := make([]scored, 0, len(analysis.Sentences))
	for _, sentence := range analysis.Sentences {
		strength := 0.0
		for _, word := range strings.Fields(sentence) {
			if count, ok := freq[word]; ok {
				strength += float64(count) / float64(maxFreq)
			}
		}
		if strength > 0 {
			ranked = append(ranked, scored{sentence: sentence, strength: strength})
		}
	}
	if len(ranked) == 0 {
		return "", ErrNoContent
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].strength > ranked[j].strength
	})
	if numSentences > len(ranked) {
		numSentences = len(ranked)
	}

	parts := make([]string, 0, numSentences)
	for _, item := range ranked[:numSentences] {
		parts = append(parts, strings.TrimSpace(item.sentence))
	}
	return strings.Join(parts, " "), nil
}
