// Package cabinet models guitar loudspeaker cabinets as short biquad chains
// and blends them against the dry signal.
package cabinet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
)

// ErrUnknownProfile is returned by ParseProfile for unrecognized names.
var ErrUnknownProfile = errors.New("cabinet: unknown profile")

// Profile selects a cabinet voicing. The order matches the cabinet selector
// parameter.
type Profile int

const (
	Marshall4x12V30 Profile = iota
	FenderTwin2x12
	VoxAC30Blue
	Mesa4x12Recto
	Direct

	numProfiles
)

// SectionsPerProfile is the chain length of every profile, Direct included.
const SectionsPerProfile = 3

// Voicing is the analog-style description of a cabinet: a speaker
// resonance high-pass, a presence peak and a cone roll-off low-pass.
type Voicing struct {
	HighpassHz float64
	HighpassQ  float64
	PeakHz     float64
	PeakGainDB float64
	PeakQ      float64
	LowpassHz  float64
	LowpassQ   float64
}

type profileInfo struct {
	key     string
	label   string
	voicing Voicing
	direct  bool
}

var profiles = [numProfiles]profileInfo{
	Marshall4x12V30: {
		key: "marshall_4x12_v30", label: "Marshall 4x12 V30",
		voicing: Voicing{
			HighpassHz: 80, HighpassQ: 0.8,
			PeakHz: 1800, PeakGainDB: 4, PeakQ: 1.2,
			LowpassHz: 4800, LowpassQ: 0.7,
		},
	},
	FenderTwin2x12: {
		key: "fender_twin_2x12", label: "Fender Twin 2x12",
		voicing: Voicing{
			HighpassHz: 70, HighpassQ: 0.7,
			PeakHz: 600, PeakGainDB: -3, PeakQ: 0.8,
			LowpassHz: 6500, LowpassQ: 0.7,
		},
	},
	VoxAC30Blue: {
		key: "vox_ac30_blue", label: "Vox AC30 Blue",
		voicing: Voicing{
			HighpassHz: 100, HighpassQ: 0.7,
			PeakHz: 1200, PeakGainDB: 3, PeakQ: 1.0,
			LowpassHz: 5500, LowpassQ: 0.7,
		},
	},
	Mesa4x12Recto: {
		key: "mesa_4x12_recto", label: "Mesa 4x12 Recto",
		voicing: Voicing{
			HighpassHz: 90, HighpassQ: 1.0,
			PeakHz: 2500, PeakGainDB: 3, PeakQ: 1.0,
			LowpassHz: 5000, LowpassQ: 0.9,
		},
	},
	Direct: {
		key: "direct", label: "Direct", direct: true,
	},
}

// Profiles returns every profile in selector order.
func Profiles() []Profile {
	out := make([]Profile, numProfiles)
	for i := range out {
		out[i] = Profile(i)
	}

	return out
}

// Valid reports whether p names a profile.
func (p Profile) Valid() bool {
	return p >= 0 && p < numProfiles
}

// String returns the display label.
func (p Profile) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Profile(%d)", int(p))
	}

	return profiles[p].label
}

// Key returns the stable identifier used in presets.
func (p Profile) Key() string {
	if !p.Valid() {
		return ""
	}

	return profiles[p].key
}

// Voicing returns the filter description of p. Direct has none.
func (p Profile) Voicing() (Voicing, bool) {
	if !p.Valid() || profiles[p].direct {
		return Voicing{}, false
	}

	return profiles[p].voicing, true
}

// ParseProfile accepts a key or a display label, case-insensitively.
func ParseProfile(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	for i := range profiles {
		if strings.EqualFold(name, profiles[i].key) || strings.EqualFold(name, profiles[i].label) {
			return Profile(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Design returns the section coefficients of p at sampleRate.
// Direct and invalid profiles return passthrough sections.
func Design(p Profile, sampleRate float64) [SectionsPerProfile]biquad.Coefficients {
	v, ok := p.Voicing()
	if !ok {
		return [SectionsPerProfile]biquad.Coefficients{
			biquad.Passthrough(), biquad.Passthrough(), biquad.Passthrough(),
		}
	}

	return [SectionsPerProfile]biquad.Coefficients{
		design.Highpass(v.HighpassHz, v.HighpassQ, sampleRate),
		design.Peak(v.PeakHz, v.PeakGainDB, v.PeakQ, sampleRate),
		design.Lowpass(v.LowpassHz, v.LowpassQ, sampleRate),
	}
}
