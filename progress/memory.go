package progress

import (
	"sort"
	"sync"
)

// MemoryStore keeps progress for the lifetime of the process.
type MemoryStore struct {
	mu       sync.Mutex
	unlocked map[int]struct{}
	best     map[int]Record
	ghosts   map[int]Trace
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		unlocked: map[int]struct{}{0: {}},
		best:     make(map[int]Record),
		ghosts:   make(map[int]Trace),
	}
}

func (s *MemoryStore) Unlocked() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.unlocked))
	for lvl := range s.unlocked {
		out = append(out, lvl)
	}
	sort.Ints(out)
	return out, nil
}

func (s *MemoryStore) Unlock(level int) error {
	s.mu.Lock()
	s.unlocked[level] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Best(level int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.best[level]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) SubmitResult(level int, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.best[level]; ok && !rec.Better(prev) {
		return false, nil
	}
	s.best[level] = rec
	return true, nil
}

func (s *MemoryStore) SaveGhost(level int, tr Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	samples := make([]Sample, len(tr.Samples))
	copy(samples, tr.Samples)
	s.ghosts[level] = Trace{RunID: tr.RunID, Samples: samples}
	return nil
}

func (s *MemoryStore) Ghost(level int) (Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.ghosts[level]
	if !ok {
		return Trace{}, ErrNotFound
	}
	return tr, nil
}

func (s *MemoryStore) Close() error { return nil }
