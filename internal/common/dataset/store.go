// Package dataset holds the read-only dram records the skill reviews.
package dataset

import (
	"context"
	stderrors "errors"
	"strings"

	"whiskey-reviewer/internal/models"
)

// Store is an immutable, case-insensitively indexed collection of drams.
// It is safe for concurrent readers.
type Store struct {
	records    []models.Dram
	index      map[string]int
	duplicates []string
}

// NewStore indexes records in order. When two names fold to the same key the
// first record wins and the later name is reported by Duplicates.
func NewStore(records []models.Dram) *Store {
	s := &Store{
		records: make([]models.Dram, len(records)),
		index:   make(map[string]int, len(records)),
	}
	copy(s.records, records)

	for i, d := range s.records {
		key := foldName(d.Name)
		if _, exists := s.index[key]; exists {
			s.duplicates = append(s.duplicates, d.Name)
			continue
		}
		s.index[key] = i
	}
	return s
}

// Find looks a dram up by exact name, ignoring case. The bool is false when
// no record matches; that is an ordinary outcome, not an error.
func (s *Store) Find(name string) (models.Dram, bool) {
	i, ok := s.index[foldName(name)]
	if !ok {
		return models.Dram{}, false
	}
	return s.records[i], true
}

func (s *Store) Len() int {
	return len(s.records)
}

// ErrEmpty is reported by Ready when no records were loaded.
var ErrEmpty = stderrors.New("dataset has no records")

// Ready is a readiness check: an empty dataset can only ever apologise.
func (s *Store) Ready(context.Context) error {
	if s.Len() == 0 {
		return ErrEmpty
	}
	return nil
}

// All returns a copy of the records in load order.
func (s *Store) All() []models.Dram {
	out := make([]models.Dram, len(s.records))
	copy(out, s.records)
	return out
}

// Duplicates lists names shadowed by an earlier record.
func (s *Store) Duplicates() []string {
	out := make([]string, len(s.duplicates))
	copy(out, s.duplicates)
	return out
}

// Only case is folded; whitespace and punctuation are compared as-is.
func foldName(name string) string {
	return strings.ToLower(name)
}
