package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/layarproject/layar/internal/domain"
)

// Entry is one indexed catalog item.
type Entry struct {
	ID    string
	Title string
	Type  domain.ContentType
}

// Result is a ranked match with positions for highlighting.
type Result struct {
	Entry
	Score          int
	MatchedIndexes []int
}

// Index ranks already-loaded items (watch history, cached shelves) against
// free-text input without a network round trip.
type Index struct {
	entries     []Entry
	lowerTitles []string // pre-computed for case-insensitive matching
}

// NewIndex builds an index over the given entries.
func NewIndex(entries []Entry) *Index {
	lower := make([]string, len(entries))
	for i, e := range entries {
		lower[i] = strings.ToLower(e.Title)
	}
	return &Index{entries: entries, lowerTitles: lower}
}

// String returns the lowercase title at i (implements fuzzy.Source).
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of indexed entries (implements fuzzy.Source).
func (idx *Index) Len() int { return len(idx.entries) }

// Find returns entries fuzzy-matching query, best first. An empty query
// matches nothing.
func (idx *Index) Find(query string) []Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Entry:          idx.entries[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return results
}

// FromHistory builds index entries from watch-history items.
func FromHistory(items []domain.WatchHistoryItem) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{ID: item.ID, Title: item.Title, Type: item.Type})
	}
	return entries
}
