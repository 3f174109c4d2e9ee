package catalog

import "sync"

// Store holds the last-fetched set of lessons. It is replace-only: a
// successful fetch swaps the whole listing, a failed fetch leaves the
// previous contents untouched. The version counter increments on every
// replace so derived views can key off it.
type Store struct {
	mu      sync.RWMutex
	lessons []Lesson
	index   map[string]int
	version uint64
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Replace swaps the full listing and bumps the store version.
func (s *Store) Replace(lessons []Lesson) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lessons = make([]Lesson, len(lessons))
	copy(s.lessons, lessons)

	s.index = make(map[string]int, len(lessons))
	for i, l := range s.lessons {
		s.index[l.ID] = i
	}
	s.version++
}

// Get returns the lesson with the given id, if present.
func (s *Store) Get(id string) (Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Lesson{}, false
	}
	return s.lessons[i], true
}

// Lessons returns a copy of the current listing in service order.
func (s *Store) Lessons() []Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Lesson, len(s.lessons))
	copy(out, s.lessons)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lessons)
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
