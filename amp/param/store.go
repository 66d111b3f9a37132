package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrUnknownParameter is returned for keys that are not part of the layout.
var ErrUnknownParameter = errors.New("param: unknown parameter")

// Store holds the normalized target of every parameter.
//
// Each value lives in its own atomic word: one writer and any number of
// readers can use a Store concurrently without locks, and a reader never
// sees a torn value. Concurrent writers to the same parameter race, and the
// last write wins.
type Store struct {
	values [Count]atomic.Uint64
	gen    atomic.Uint64
}

// NewStore returns a Store holding every parameter's default.
func NewStore() *Store {
	s := &Store{}
	s.ResetDefaults()

	return s
}

// ResetDefaults writes every default.
func (s *Store) ResetDefaults() {
	for id := range Count {
		s.values[id].Store(math.Float64bits(layout[id].DefaultNormalized()))
	}

	s.gen.Add(1)
}

// Set writes the normalized value for key. Values outside [0, 1] are
// clamped and NaN is ignored.
func (s *Store) Set(key string, normalized float64) error {
	id, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}

	s.SetID(id, normalized)

	return nil
}

// SetID writes the normalized value for id. Invalid ids are ignored.
func (s *Store) SetID(id ID, normalized float64) {
	if !id.Valid() || math.IsNaN(normalized) {
		return
	}

	normalized = min(max(normalized, 0), 1)
	s.values[id].Store(math.Float64bits(normalized))
	s.gen.Add(1)
}

// SetPlain writes an engineering value for id, converting it with the
// parameter's mapping.
func (s *Store) SetPlain(id ID, plain float64) {
	if !id.Valid() || math.IsNaN(plain) {
		return
	}

	s.SetID(id, layout[id].Normalize(plain))
}

// Get returns the normalized value for key.
func (s *Store) Get(key string) (float64, error) {
	id, ok := Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}

	return s.GetID(id), nil
}

// GetID returns the normalized value for id, or 0 for an invalid id.
func (s *Store) GetID(id ID) float64 {
	if !id.Valid() {
		return 0
	}

	return math.Float64frombits(s.values[id].Load())
}

// Plain returns the engineering value for id.
func (s *Store) Plain(id ID) float64 {
	if !id.Valid() {
		return 0
	}

	return layout[id].Denormalize(s.GetID(id))
}

// Generation increases on every successful write. Readers can compare it
// with an earlier reading to skip work when nothing changed.
func (s *Store) Generation() uint64 {
	return s.gen.Load()
}

// Snapshot returns every parameter as a key → normalized map.
func (s *Store) Snapshot() map[string]float64 {
	out := make(map[string]float64, Count)
	for id := range Count {
		out[layout[id].Key] = s.GetID(id)
	}

	return out
}

// Load writes every known key in values. Unknown keys are skipped and
// reported together in the returned error; known keys are applied anyway.
func (s *Store) Load(values map[string]float64) error {
	var unknown []error

	for key, v := range values {
		if err := s.Set(key, v); err != nil {
			unknown = append(unknown, err)
		}
	}

	return errors.Join(unknown...)
}
