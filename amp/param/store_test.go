package param

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore()

	if err := s.Set("drive", 0.25); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("drive")
	if err != nil || got != 0.25 {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if !almostEqual(s.Plain(Drive), 1+0.25*19, 1e-12) {
		t.Fatalf("Plain(Drive) = %v", s.Plain(Drive))
	}
}

func TestStoreClampsAndIgnoresNaN(t *testing.T) {
	s := NewStore()

	s.SetID(Bass, 3)
	if s.GetID(Bass) != 1 {
		t.Fatalf("clamp high: %v", s.GetID(Bass))
	}

	s.SetID(Bass, -1)
	if s.GetID(Bass) != 0 {
		t.Fatalf("clamp low: %v", s.GetID(Bass))
	}

	gen := s.Generation()
	s.SetID(Bass, math.NaN())

	if s.GetID(Bass) != 0 {
		t.Fatalf("NaN write changed value to %v", s.GetID(Bass))
	}

	if s.Generation() != gen {
		t.Fatal("NaN write bumped the generation")
	}

	s.SetPlain(Mid, 12)
	if s.GetID(Mid) != 1 {
		t.Fatalf("SetPlain(12 dB) = %v, want 1", s.GetID(Mid))
	}
}

func TestStoreUnknownKey(t *testing.T) {
	s := NewStore()

	if err := s.Set("gain", 0.5); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Set: expected ErrUnknownParameter, got %v", err)
	}

	if _, err := s.Get("gain"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Get: expected ErrUnknownParameter, got %v", err)
	}

	s.SetID(Count, 0.5)
	if s.GetID(Count) != 0 || s.GetID(-1) != 0 {
		t.Fatal("invalid ids should read as 0")
	}
}

func TestStoreSnapshotLoad(t *testing.T) {
	a := NewStore()
	a.SetID(Drive, 0.7)
	a.SetID(Cabinet, 1)
	a.SetID(CabinetMix, 0.3)

	snap := a.Snapshot()
	if len(snap) != int(Count) {
		t.Fatalf("snapshot has %d keys", len(snap))
	}

	b := NewStore()
	if err := b.Load(snap); err != nil {
		t.Fatal(err)
	}

	for id := range Count {
		if a.GetID(id) != b.GetID(id) {
			t.Fatalf("%v: %v != %v", id, a.GetID(id), b.GetID(id))
		}
	}

	snap["presence"] = 0.5
	snap["drive"] = 0.1

	err := b.Load(snap)
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}

	if b.GetID(Drive) != 0.1 {
		t.Fatal("known keys must be applied despite unknown ones")
	}
}

func TestStoreResetDefaults(t *testing.T) {
	s := NewStore()
	s.SetID(Treble, 0)
	s.ResetDefaults()

	if s.GetID(Treble) != 0.5 {
		t.Fatalf("Treble = %v after ResetDefaults", s.GetID(Treble))
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	values := []float64{0.1, 0.2, 0.3, 0.4}

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := range 10000 {
			s.SetID(Drive, values[i%len(values)])
		}
	}()

	go func() {
		defer wg.Done()

		for range 10000 {
			got := s.GetID(Drive)
			valid := got == Describe(Drive).DefaultNormalized()
			for _, v := range values {
				valid = valid || got == v
			}

			if !valid {
				t.Errorf("torn read %v", got)
				return
			}
		}
	}()

	wg.Wait()

	if s.GetID(Drive) != 0.4 {
		t.Fatalf("last write lost: %v", s.GetID(Drive))
	}
}
