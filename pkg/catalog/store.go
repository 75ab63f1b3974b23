package catalog

import "github.com/kerbaras/anisearch/pkg/data"

// Store is the normalized, immutable catalog snapshot: retained entries in
// their fixed order plus the sorted, deduplicated tag vocabulary.
//
// A Store is never modified after Normalize returns it, so any number of
// goroutines may read it without locking.
type Store struct {
	entries  []data.Entry
	tags     []string
	excluded int
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns the retained entries in catalog order. The slice is shared
// with the store and must not be modified.
func (s *Store) Entries() []data.Entry {
	return s.entries
}

// Entry returns a copy of the entry at position i.
func (s *Store) Entry(i int) data.Entry {
	return s.entries[i].Clone()
}

// Tags returns the tag catalog in ascending order. The slice is shared with
// the store and must not be modified.
func (s *Store) Tags() []string {
	return s.tags
}

// Excluded returns how many raw entries were dropped by the exclusion set.
func (s *Store) Excluded() int {
	return s.excluded
}
