package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hvdyinv4688hbv/bookly/internal/nlp"
)

// ErrNotEnoughCandidates means the text did not yield enough unique
// terms to build a four-choice question. It is the normal end-of-content
// signal, not a fault.
var ErrNotEnoughCandidates = errors.New("not enough unique terms to build a question")

// entityLabels are the named-entity kinds worth quizzing on.
var entityLabels = map[string]struct{}{
	"PERSON": {}, "GPE": {}, "ORG": {}, "PRODUCT": {},
	"LOC": {}, "MONEY": {}, "DATE": {}, "TIME": {},
}

// Generator builds multiple-choice questions from raw text. All
// randomness flows through the injected rng, so a fixed seed and a
// fixed analyzer produce the same question.
type Generator struct {
	analyzer nlp.Analyzer
	rng      *rand.Rand
}

func NewGenerator(analyzer nlp.Analyzer, rng *rand.Rand) *Generator {
	return &Generator{analyzer: analyzer, rng: rng}
}

// Generate produces one question from text, or ErrNotEnoughCandidates
// when the text cannot support one.
func (g *Generator) Generate(text string) (Question, error) {
	if strings.TrimSpace(text) == "" {
		return Question{}, ErrNotEnoughCandidates
	}

	analysis, err := g.analyzer.Analyze(text)
	if err != nil {
		return Question{}, fmt.Errorf("analyze source text: %w", err)
	}

	candidates := candidateTerms(analysis)
	if len(candidates) < ChoiceCount {
		return Question{}, ErrNotEnoughCandidates
	}

	answer := candidates[g.rng.Intn(len(candidates))]

	pool := make([]string, 0, len(candidates)-1)
	for _, term := range candidates {
		if term != answer {
			pool = append(pool, term)
		}
	}

	choices := make([]string, 0, ChoiceCount)
	for _, idx := range g.rng.Perm(len(pool))[:ChoiceCount-1] {
		choices = append(choices, pool[idx])
	}
	choices = append(choices, answer)
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Question{
		Prompt:  buildPrompt(analysis.Sentences, answer),
		Choices: choices,
		Answer:  answer,
	}, nil
}

// candidateTerms mines answer candidates in three tiers: named
// entities, then common nouns, then any significant word. A tier is
// used only if it yields enough unique terms for a full choice set.
func candidateTerms(analysis *nlp.Analysis) []string {
	if entities := entityCandidates(analysis.Entities); len(entities) >= ChoiceCount {
		return entities
	}
	if nouns := nounCandidates(analysis.Tokens); len(nouns) >= ChoiceCount {
		return nouns
	}
	return wordCandidates(analysis.Tokens)
}

func entityCandidates(entities []nlp.Entity) []string {
	terms := make([]string, 0, len(entities))
	for _, ent := range entities {
		if _, ok := entityLabels[ent.Label]; !ok {
			continue
		}
		trimmed := strings.TrimSpace(ent.Text)
		if len(trimmed) > 1 {
			terms = append(terms, trimmed)
		}
	}
	return dedupe(terms)
}

func nounCandidates(tokens []nlp.Token) []string {
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Tag != "NN" && tok.Tag != "NNS" {
			continue
		}
		if nlp.IsStopword(tok.Text) || len(tok.Text) <= 3 {
			continue
		}
		terms = append(terms, tok.Text)
	}
	return dedupe(terms)
}

func wordCandidates(tokens []nlp.Token) []string {
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if nlp.IsStopword(tok.Text) || nlp.IsPunctTag(tok.Tag) {
			continue
		}
		if len(tok.Text) > 2 {
			terms = append(terms, tok.Text)
		}
	}
	return dedupe(terms)
}

// dedupe keeps the first occurrence of each term. First-seen order
// keeps generation reproducible for a fixed seed.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}
	return unique
}

// buildPrompt blanks the answer out of the first sentence that contains
// it and has more than five words. Every occurrence in that sentence is
// replaced. Without such a sentence the prompt falls back to a generic
// missing-word form.
func buildPrompt(sentences []string, answer string) string {
	for _, sent := range sentences {
		if strings.Contains(sent, answer) && len(strings.Fields(sent)) > 5 {
			return strings.ReplaceAll(sent, answer, Blank)
		}
	}
	return "What is the missing word: " + Blank + "?"
}
