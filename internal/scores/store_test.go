package scores

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "quiz_scores.json")
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	store := Open(tempStorePath(t))

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
	if _, ok := store.Highest(); ok {
		t.Fatalf("expected no highest score on empty store")
	}
}

func TestOpenDiscardsCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "scores: 3/5"},
		{name: "wrong shape", content: `{"scores": ["3 / 5"]}`},
		{name: "truncated", content: `["3 / 5",`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := tempStorePath(t)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			store := Open(path)
			if store.Len() != 0 {
				t.Fatalf("expected corrupt file to be discarded, got %d records", store.Len())
			}
		})
	}
}

func TestAppendFlushLoadRoundTrip(t *testing.T) {
	path := tempStorePath(t)

	store := Open(path)
	store.Append("2 / 4")
	store.Append("3 / 5")
	if err := store.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	reloaded := Open(path)
	records := reloaded.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records after reload, got %d", len(records))
	}
	if records[len(records)-1] != "3 / 5" {
		t.Fatalf("last record = %q, want %q", records[len(records)-1], "3 / 5")
	}
}

func TestFlushWritesIndentedJSONArray(t *testing.T) {
	path := tempStorePath(t)

	store := Open(path)
	store.Append("1 / 2")
	if err := store.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "[") {
		t.Fatalf("expected a JSON array, got %q", content)
	}
	if !strings.Contains(content, "\n    \"1 / 2\"") {
		t.Fatalf("expected indented record, got %q", content)
	}
}

func TestFlushEmptyStoreWritesEmptyArray(t *testing.T) {
	path := tempStorePath(t)

	if err := Open(path).Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", string(data))
	}
}

func TestHighest(t *testing.T) {
	tests := []struct {
		name    string
		records []string
		want    string
		wantOK  bool
	}{
		{
			name:    "picks max correct component",
			records: []string{"2 / 5", "4 / 5", "1 / 5"},
			want:    "4 / 5",
			wantOK:  true,
		},
		{
			name:    "skips unparseable records",
			records: []string{"junk", "3 / 4", "n/a / 5"},
			want:    "3 / 4",
			wantOK:  true,
		},
		{
			name:    "first of tied maxima",
			records: []string{"4 / 6", "4 / 4"},
			want:    "4 / 6",
			wantOK:  true,
		},
		{
			name:    "all unparseable",
			records: []string{"junk", "also junk"},
			wantOK:  false,
		},
		{
			name:   "empty",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := Open(tempStorePath(t))
			for _, record := range tc.records {
				store.Append(record)
			}

			got, ok := store.Highest()
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("highest = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecentIsMostRecentFirstAndCapped(t *testing.T) {
	store := Open(tempStorePath(t))
	for i := 1; i <= 12; i++ {
		store.Append(Record(i, 12))
	}

	recent := store.Recent(RecentLimit)
	if len(recent) != RecentLimit {
		t.Fatalf("expected %d records, got %d", RecentLimit, len(recent))
	}
	if recent[0] != "12 / 12" {
		t.Fatalf("first recent = %q, want %q", recent[0], "12 / 12")
	}
	if recent[len(recent)-1] != "3 / 12" {
		t.Fatalf("last recent = %q, want %q", recent[len(recent)-1], "3 / 12")
	}

	// The store itself keeps the full history.
	if store.Len() != 12 {
		t.Fatalf("store len = %d, want 12", store.Len())
	}
}

func TestRecordFormat(t *testing.T) {
	if got := Record(3, 5); got != "3 / 5" {
		t.Fatalf("Record(3, 5) = %q, want %q", got, "3 / 5")
	}
}
