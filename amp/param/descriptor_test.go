package param

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLayoutKeysAreUniqueAndOrdered(t *testing.T) {
	want := []string{
		"input_gain", "drive", "bass", "mid", "treble",
		"cabinet_type", "cabinet_mix", "output_gain",
	}

	l := Layout()
	if len(l) != len(want) {
		t.Fatalf("len(Layout()) = %d, want %d", len(l), len(want))
	}

	for i, d := range l {
		if d.Key != want[i] || d.ID != ID(i) {
			t.Fatalf("layout[%d] = %s/%d, want %s/%d", i, d.Key, d.ID, want[i], i)
		}

		id, ok := Lookup(d.Key)
		if !ok || id != d.ID {
			t.Fatalf("Lookup(%q) = %v,%v", d.Key, id, ok)
		}
	}

	if _, ok := Lookup("presence"); ok {
		t.Fatal("Lookup accepted an unknown key")
	}
}

func TestDefaults(t *testing.T) {
	v := DefaultValues()

	if v[InputGain] != 1 || v[OutputGain] != 1 {
		t.Fatalf("gain defaults = %v/%v, want unity", v[InputGain], v[OutputGain])
	}

	if v[Drive] != MinDrive || v[CabinetMix] != 1 || v[Cabinet] != 0 {
		t.Fatalf("defaults drive=%v mix=%v cab=%v", v[Drive], v[CabinetMix], v[Cabinet])
	}

	if n := Describe(InputGain).DefaultNormalized(); !almostEqual(n, 0.5, 1e-12) {
		t.Fatalf("input gain default normalized = %v, want 0.5", n)
	}

	if n := Describe(Bass).DefaultNormalized(); n != 0.5 {
		t.Fatalf("bass default normalized = %v, want 0.5", n)
	}
}

func TestLogarithmicMapping(t *testing.T) {
	d := Describe(OutputGain)

	tests := []struct {
		n      float64
		wantDB float64
	}{
		{n: 0, wantDB: -30},
		{n: 0.25, wantDB: -15},
		{n: 0.5, wantDB: 0},
		{n: 1, wantDB: 30},
	}

	for _, tt := range tests {
		db := 20 * math.Log10(d.Denormalize(tt.n))
		if !almostEqual(db, tt.wantDB, 1e-9) {
			t.Fatalf("Denormalize(%v) = %v dB, want %v", tt.n, db, tt.wantDB)
		}

		if n := d.Normalize(d.Denormalize(tt.n)); !almostEqual(n, tt.n, 1e-12) {
			t.Fatalf("round trip %v -> %v", tt.n, n)
		}
	}
}

func TestSteppedMapping(t *testing.T) {
	d := Describe(Cabinet)
	if d.Steps() != 5 {
		t.Fatalf("Steps() = %d, want 5", d.Steps())
	}

	tests := []struct {
		n    float64
		want int
	}{
		{n: 0, want: 0},
		{n: 0.12, want: 0},
		{n: 0.13, want: 1},
		{n: 0.5, want: 2},
		{n: 0.9, want: 4},
		{n: 1, want: 4},
		{n: 7, want: 4},
	}

	for _, tt := range tests {
		if got := d.Index(tt.n); got != tt.want {
			t.Fatalf("Index(%v) = %d, want %d", tt.n, got, tt.want)
		}
	}

	if d.Normalize(4) != 1 || d.Normalize(2) != 0.5 {
		t.Fatal("stepped Normalize mismatch")
	}

	if Describe(Drive).Index(0.5) != -1 {
		t.Fatal("continuous parameter reported an index")
	}
}

func TestNormalizeClampsAndHandlesNaN(t *testing.T) {
	d := Describe(Bass)
	if d.Normalize(40) != 1 || d.Normalize(-40) != 0 {
		t.Fatal("Normalize did not clamp")
	}

	if d.Normalize(math.NaN()) != 0.5 {
		t.Fatal("Normalize(NaN) should give the default")
	}

	if d.Denormalize(2) != ToneRangeDB {
		t.Fatalf("Denormalize(2) = %v", d.Denormalize(2))
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		id   ID
		n    float64
		want string
	}{
		{id: InputGain, n: 0.5, want: "0.00 dB"},
		{id: InputGain, n: 1, want: "30.00 dB"},
		{id: Bass, n: 0.75, want: "6.00 dB"},
		{id: Drive, n: 0, want: "1.00"},
		{id: CabinetMix, n: 0.505, want: "50.5%"},
		{id: Cabinet, n: 0, want: "Marshall 4x12 V30"},
		{id: Cabinet, n: 1, want: "Direct"},
	}

	for _, tt := range tests {
		if got := Describe(tt.id).Format(tt.n); got != tt.want {
			t.Fatalf("%v.Format(%v) = %q, want %q", tt.id, tt.n, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		id   ID
		text string
		want float64
	}{
		{id: OutputGain, text: "0 dB", want: 0.5},
		{id: OutputGain, text: "-30", want: 0},
		{id: Treble, text: "-6dB", want: 0.25},
		{id: CabinetMix, text: "25%", want: 0.25},
		{id: Cabinet, text: "vox ac30 blue", want: 0.5},
		{id: Cabinet, text: "4", want: 1},
	}

	for _, tt := range tests {
		got, err := Describe(tt.id).Parse(tt.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}

		if !almostEqual(got, tt.want, 1e-9) {
			t.Fatalf("%v.Parse(%q) = %v, want %v", tt.id, tt.text, got, tt.want)
		}
	}

	if _, err := Describe(Drive).Parse("loud"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}
