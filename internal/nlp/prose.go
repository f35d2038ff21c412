package nlp

import (
	"fmt"

	prose "github.com/jdkato/prose/v2"
)

// Prose is an Analyzer backed by the prose NLP library. Build one with
// NewProse and reuse it; the underlying model data is loaded on first
// use and shared across calls.
type Prose struct{}

func NewProse() *Prose {
	return &Prose{}
}

func (p *Prose) Analyze(text string) (*Analysis, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}

	analysis := &Analysis{}

	for _, tok := range doc.Tokens() {
		analysis.Tokens = append(analysis.Tokens, Token{
			Text:  tok.Text,
			Tag:   tok.Tag,
			Label: tok.Label,
		})
	}

	for _, ent := range doc.Entities() {
		analysis.Entities = append(analysis.Entities, Entity{
			Text:  ent.Text,
			Label: ent.Label,
		})
	}

	for _, sent := range doc.Sentences() {
		analysis.Sentences = append(analysis.Sentences, sent.Text)
	}

	return analysis, nil
}
