package param

import (
	"time"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// ID indexes a parameter in the layout, a Store and a Values array.
type ID int

const (
	InputGain ID = iota
	Drive
	Bass
	Mid
	Treble
	Cabinet
	CabinetMix
	OutputGain

	// Count is the number of parameters.
	Count
)

// DefaultSmoothing is the ramp time of every continuous parameter.
const DefaultSmoothing = 50 * time.Millisecond

// Gain range shared by the input and output stages.
const (
	MinGainDB = -30.0
	MaxGainDB = 30.0
)

// Drive range. Drive 1 leaves the signal untouched.
const (
	MinDrive = 1.0
	MaxDrive = 20.0
)

// ToneRangeDB bounds the bass, mid and treble controls symmetrically.
const ToneRangeDB = 12.0

// CabinetChoices lists the cabinet selector positions in index order.
var CabinetChoices = []string{
	"Marshall 4x12 V30",
	"Fender Twin 2x12",
	"Vox AC30 Blue",
	"Mesa 4x12 Recto",
	"Direct",
}

var layout = [Count]Descriptor{
	InputGain: {
		ID: InputGain, Key: "input_gain", Label: "Input Gain", Unit: "dB",
		Min: core.DBToLinear(MinGainDB), Max: core.DBToLinear(MaxGainDB), Default: 1,
		Mapping: MappingLogarithmic, Display: DisplayGainDecibel, Smoothing: DefaultSmoothing,
	},
	Drive: {
		ID: Drive, Key: "drive", Label: "Drive",
		Min: MinDrive, Max: MaxDrive, Default: MinDrive,
		Mapping: MappingLinear, Display: DisplayPlain, Smoothing: DefaultSmoothing,
	},
	Bass: {
		ID: Bass, Key: "bass", Label: "Bass", Unit: "dB",
		Min: -ToneRangeDB, Max: ToneRangeDB,
		Mapping: MappingLinear, Display: DisplayDecibel, Smoothing: DefaultSmoothing,
	},
	Mid: {
		ID: Mid, Key: "mid", Label: "Mid", Unit: "dB",
		Min: -ToneRangeDB, Max: ToneRangeDB,
		Mapping: MappingLinear, Display: DisplayDecibel, Smoothing: DefaultSmoothing,
	},
	Treble: {
		ID: Treble, Key: "treble", Label: "Treble", Unit: "dB",
		Min: -ToneRangeDB, Max: ToneRangeDB,
		Mapping: MappingLinear, Display: DisplayDecibel, Smoothing: DefaultSmoothing,
	},
	Cabinet: {
		ID: Cabinet, Key: "cabinet_type", Label: "Cabinet",
		Min: 0, Max: float64(len(CabinetChoices) - 1), Default: 0,
		Mapping: MappingStepped, Display: DisplayChoice, Choices: CabinetChoices,
	},
	CabinetMix: {
		ID: CabinetMix, Key: "cabinet_mix", Label: "Cabinet Mix", Unit: "%",
		Min: 0, Max: 1, Default: 1,
		Mapping: MappingLinear, Display: DisplayPercent, Smoothing: DefaultSmoothing,
	},
	OutputGain: {
		ID: OutputGain, Key: "output_gain", Label: "Output Gain", Unit: "dB",
		Min: core.DBToLinear(MinGainDB), Max: core.DBToLinear(MaxGainDB), Default: 1,
		Mapping: MappingLogarithmic, Display: DisplayGainDecibel, Smoothing: DefaultSmoothing,
	},
}

var keyIndex = func() map[string]ID {
	m := make(map[string]ID, Count)
	for i := range layout {
		m[layout[i].Key] = layout[i].ID
	}

	return m
}()

// Layout returns a copy of every descriptor in ID order.
func Layout() []Descriptor {
	out := make([]Descriptor, Count)
	copy(out, layout[:])

	return out
}

// Describe returns the descriptor for id. It panics on an out-of-range id.
func Describe(id ID) Descriptor {
	return layout[id]
}

// Lookup resolves a stable key to its ID.
func Lookup(key string) (ID, bool) {
	id, ok := keyIndex[key]
	return id, ok
}

// Valid reports whether id names a parameter.
func (id ID) Valid() bool {
	return id >= 0 && id < Count
}

func (id ID) String() string {
	if !id.Valid() {
		return "invalid"
	}

	return layout[id].Key
}

// Values carries one engineering value per parameter for the current sample.
type Values [Count]float64

// DefaultValues returns every parameter at its default.
func DefaultValues() Values {
	var v Values
	for i := range layout {
		v[i] = layout[i].Default
	}

	return v
}
