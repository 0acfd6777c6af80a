package answers

import "github.com/goliatone/go-sitesurvey/pkg/schema"

// Store holds raw answers keyed by field instance key. It is pure key-value
// state: no derived values, no implicit defaults, and answers for hidden
// fields are retained until explicitly deleted. A Store expects a single
// logical owner; concurrent callers must serialize access themselves.
type Store struct {
	values map[string]string
}

// NewStore returns an empty answer store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Set records the raw value for the instance key. Storing an empty string is
// a valid answer and distinct from an absent key.
func (s *Store) Set(key, value string) {
	s.values[key] = value
}

// Get returns the stored value and whether the key has been answered.
func (s *Store) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Delete removes the answer for the key, if any.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Len reports how many keys have been answered.
func (s *Store) Len() int {
	return len(s.values)
}

// Snapshot copies the current answers into an immutable-by-convention map
// for resolvers and report generation.
func (s *Store) Snapshot() schema.Answers {
	out := make(schema.Answers, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}
