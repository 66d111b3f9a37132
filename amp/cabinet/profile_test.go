package cabinet

import (
	"errors"
	"testing"
)

func TestProfileNames(t *testing.T) {
	tests := []struct {
		p     Profile
		key   string
		label string
	}{
		{p: Marshall4x12V30, key: "marshall_4x12_v30", label: "Marshall 4x12 V30"},
		{p: FenderTwin2x12, key: "fender_twin_2x12", label: "Fender Twin 2x12"},
		{p: VoxAC30Blue, key: "vox_ac30_blue", label: "Vox AC30 Blue"},
		{p: Mesa4x12Recto, key: "mesa_4x12_recto", label: "Mesa 4x12 Recto"},
		{p: Direct, key: "direct", label: "Direct"},
	}

	if len(Profiles()) != len(tests) {
		t.Fatalf("Profiles() has %d entries", len(Profiles()))
	}

	for i, tt := range tests {
		if Profiles()[i] != tt.p || tt.p.Key() != tt.key || tt.p.String() != tt.label {
			t.Fatalf("%d: got %v/%q/%q", i, Profiles()[i], tt.p.Key(), tt.p.String())
		}

		for _, name := range []string{tt.key, tt.label, " " + tt.key + " "} {
			p, err := ParseProfile(name)
			if err != nil || p != tt.p {
				t.Fatalf("ParseProfile(%q) = %v, %v", name, p, err)
			}
		}
	}

	if _, err := ParseProfile("orange_2x12"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}

	if Profile(9).Valid() || Profile(9).Key() != "" || Profile(-1).String() != "Profile(-1)" {
		t.Fatal("invalid profile handling")
	}
}

func TestDirectHasNoVoicing(t *testing.T) {
	if _, ok := Direct.Voicing(); ok {
		t.Fatal("Direct reported a voicing")
	}

	for _, c := range Design(Direct, 48000) {
		if !c.IsPassthrough() {
			t.Fatalf("Direct section %+v is not passthrough", c)
		}
	}

	for _, p := range Profiles()[:4] {
		if _, ok := p.Voicing(); !ok {
			t.Fatalf("%v has no voicing", p)
		}
	}
}

func TestDesignsAreStable(t *testing.T) {
	for _, sr := range []float64{8000, 22050, 44100, 48000, 96000, 192000} {
		for _, p := range Profiles() {
			for i, c := range Design(p, sr) {
				if !c.IsStable() {
					t.Fatalf("%v @ %v section %d unstable: %v", p, sr, i, c.Poles())
				}
			}
		}
	}
}
