// Package preset reads and writes amplifier settings as flat JSON objects
// of normalized parameter values, for example
//
//	{"drive": 0.42, "cabinet_type": 0.25, "cabinet_mix": 1}
//
// and keeps a Store in sync with a preset file on disk.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-amp/amp/param"
)

// ErrInvalidPreset is returned for preset data that is not a flat object
// of known keys with values in [0, 1].
var ErrInvalidPreset = errors.New("preset: invalid preset")

// Preset maps parameter keys to normalized values. Missing keys leave the
// corresponding parameter untouched when applied.
type Preset map[string]float64

// FromStore captures every parameter of s.
func FromStore(s *param.Store) Preset {
	return Preset(s.Snapshot())
}

// Validate checks that every key is known and every value is a finite
// number in [0, 1].
func (p Preset) Validate() error {
	var errs []error

	for key, v := range p {
		if _, ok := param.Lookup(key); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown key %q", ErrInvalidPreset, key))
			continue
		}

		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s = %v outside [0, 1]", ErrInvalidPreset, key, v))
		}
	}

	return errors.Join(errs...)
}

// Apply validates p and writes it to s. Nothing is written when p is
// invalid.
func (p Preset) Apply(s *param.Store) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return s.Load(p)
}

// Decode reads one preset from r.
func Decode(r io.Reader) (Preset, error) {
	var p Preset

	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	if p == nil {
		return nil, fmt.Errorf("%w: null", ErrInvalidPreset)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Encode writes p to w as indented JSON with sorted keys.
func Encode(w io.Writer, p Preset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}

// Load reads the preset file at path.
func Load(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Save writes p to path. The file is replaced atomically so a watcher never
// sees a partial preset.
func Save(path string, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".preset-*")
	if err != nil {
		return err
	}

	if err := Encode(tmp, p); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
