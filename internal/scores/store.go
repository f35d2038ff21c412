package scores

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// RecentLimit caps the history view shown to the user. The store itself
// keeps the full sequence.
const RecentLimit = 10

// Store holds the ordered quiz score history, backed by a JSON file of
// "correct / asked" strings. Loading is permissive: a missing or
// corrupt file yields an empty history, never a failure.
type Store struct {
	path    string
	records []string
}

// Open creates a store over path and loads whatever history it holds.
// Corrupt contents are discarded with a log line.
func Open(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = "quiz_scores.json"
	}

	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("scores: cannot read %s, starting empty: %v", path, err)
		}
		return store
	}
	if err := json.Unmarshal(data, &store.records); err != nil {
		log.Printf("scores: discarding corrupt score file %s: %v", path, err)
		store.records = nil
	}
	return store
}

// Record formats a score pair the way the store persists it.
func Record(score, asked int) string {
	return fmt.Sprintf("%d / %d", score, asked)
}

func (s *Store) Append(record string) {
	s.records = append(s.records, record)
}

// Flush rewrites the whole backing file, indented for readability.
func (s *Store) Flush() error {
	payload := s.records
	if payload == nil {
		payload = []string{}
	}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("encode score history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write score file: %w", err)
	}
	return nil
}

func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the full history, oldest first.
func (s *Store) Records() []string {
	out := make([]string, len(s.records))
	copy(out, s.records)
	return out
}

// Recent returns up to n records, most recent first.
func (s *Store) Recent(n int) []string {
	if n > len(s.records) {
		n = len(s.records)
	}
	out := make([]string, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Highest returns the record with the largest correct component.
// Records that do not parse are skipped; the second result is false
// when no record parses. Ties keep the earliest record.
func (s *Store) Highest() (string, bool) {
	best := ""
	bestCorrect := -1
	for _, record := range s.records {
		correct, ok := parseCorrect(record)
		if !ok {
			continue
		}
		if correct > bestCorrect {
			best = record
			bestCorrect = correct
		}
	}
	return best, bestCorrect >= 0
}

func parseCorrect(record string) (int, bool) {
	head, _, found := strings.Cut(record, "/")
	if !found {
		return 0, false
	}
	correct, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return correct, true
}
