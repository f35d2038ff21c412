package nlp

// Token is a single word or symbol with its part-of-speech tag
// (Penn Treebank) and entity label, if any.
type Token struct {
	Text  string
	Tag   string
	Label string
}

// Entity is a named entity found in the text.
type Entity struct {
	Text  string
	Label string
}

// Analysis is the processed form of a block of text.
type Analysis struct {
	Tokens    []Token
	Entities  []Entity
	Sentences []string
}

// Analyzer turns raw text into tokens, entities and sentences. The
// implementation is expected to be expensive to build and cheap to
// share, so callers construct one and pass it by reference.
type Analyzer interface {
	Analyze(text string) (*Analysis, error)
}
