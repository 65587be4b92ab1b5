package postfx

import "sync"

// MemStore is an in-memory Store with per-key dirty tracking. It backs
// tests, the demo tooling and hosts without a persistent settings
// layer.
//
// Set marks a key dirty only when the value actually changes;
// HasChanged consumes the flag, matching the query-and-clear contract
// of [Store]. MemStore is safe for concurrent use so a UI thread may
// write settings while the render thread polls, though the engine
// itself stays single-threaded.
type MemStore struct {
	mu     sync.Mutex
	values map[string]int
	dirty  map[string]bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates a store seeded with the neutral defaults for all
// engine settings, every parameter-set instance included: mode off,
// preset none, midpoint values for the signed parameter groups and zero
// for the 0..1-range group.
func NewMemStore() *MemStore {
	s := &MemStore{
		values: make(map[string]int),
		dirty:  make(map[string]bool),
	}
	s.values[SettingPostProcess] = int(ModeOff)
	s.values[SettingSunglasses] = int(PresetNone)

	neutral := NeutralParams()
	group := [10]int{0, 0, 0, 0, 1, 1, 1, 2, 2, 2}
	comp := [10]int{0, 1, 2, 3, 0, 1, 2, 0, 1, 2}
	for _, sfx := range instanceSuffixes {
		for i, key := range paramKeys {
			s.values[key+sfx] = int(neutral[group[i]][comp[i]])
		}
	}
	return s
}

// Set stores a value and marks the key dirty if the value changed.
func (s *MemStore) Set(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty[key] = true
}

// Value returns the stored value, or zero for unknown keys.
func (s *MemStore) Value(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// HasChanged reports and clears the key's dirty flag.
func (s *MemStore) HasChanged(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty[key] {
		delete(s.dirty, key)
		return true
	}
	return false
}
