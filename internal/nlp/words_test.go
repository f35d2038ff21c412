package nlp

import "testing"

func TestIsStopword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{word: "the", want: true},
		{word: "The", want: true},
		{word: "AND", want: true},
		{word: "mitochondria", want: false},
		{word: "", want: false},
	}

	for _, tc := range tests {
		if got := IsStopword(tc.word); got != tc.want {
			t.Fatalf("IsStopword(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestIsPunctTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{tag: ".", want: true},
		{tag: ",", want: true},
		{tag: "SYM", want: true},
		{tag: "NN", want: false},
		{tag: "VBD", want: false},
	}

	for _, tc := range tests {
		if got := IsPunctTag(tc.tag); got != tc.want {
			t.Fatalf("IsPunctTag(%q) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}
