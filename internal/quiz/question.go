package quiz

// Blank is the placeholder the generator substitutes for the answer
// inside a prompt sentence.
const Blank = "_____"

// ChoiceCount is the number of options every generated question carries.
const ChoiceCount = 4

// Question is a fill-in-the-blank multiple-choice question. Choices are
// pairwise distinct, Answer is always one of them, and Prompt contains
// at least one Blank marker.
type Question struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}
