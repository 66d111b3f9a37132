package param

import (
	"math"
	"time"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Mapping describes how a normalized value in [0, 1] maps to the
// engineering range of a parameter.
type Mapping int

const (
	// MappingLinear maps n to Min + n*(Max-Min).
	MappingLinear Mapping = iota
	// MappingLogarithmic maps n to Min*(Max/Min)^n. Min must be positive.
	MappingLogarithmic
	// MappingStepped maps n to round(n*(Steps-1)), an index into Choices.
	MappingStepped
)

func (m Mapping) String() string {
	switch m {
	case MappingLinear:
		return "linear"
	case MappingLogarithmic:
		return "log"
	case MappingStepped:
		return "stepped"
	default:
		return "unknown"
	}
}

// Display selects how a parameter is shown to a user.
type Display int

const (
	DisplayPlain Display = iota
	DisplayDecibel
	DisplayGainDecibel
	DisplayPercent
	DisplayChoice
)

// Descriptor is the static description of one parameter.
type Descriptor struct {
	ID      ID
	Key     string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Default float64 // engineering units
	Mapping Mapping
	Display Display
	Choices []string

	// Smoothing is the ramp duration. Zero snaps to the target.
	Smoothing time.Duration
}

// Steps returns the number of discrete positions for stepped parameters and
// 0 for continuous ones.
func (d Descriptor) Steps() int {
	if d.Mapping != MappingStepped {
		return 0
	}

	return len(d.Choices)
}

// Normalize converts an engineering value to [0, 1], clamping out-of-range input.
func (d Descriptor) Normalize(plain float64) float64 {
	if math.IsNaN(plain) {
		return d.Normalize(d.Default)
	}

	plain = core.Clamp(plain, d.Min, d.Max)

	switch d.Mapping {
	case MappingLogarithmic:
		if d.Min <= 0 || d.Max <= d.Min {
			return 0
		}

		return math.Log(plain/d.Min) / math.Log(d.Max/d.Min)

	case MappingStepped:
		steps := d.Steps()
		if steps < 2 {
			return 0
		}

		return math.Round(plain) / float64(steps-1)

	default:
		if d.Max <= d.Min {
			return 0
		}

		return (plain - d.Min) / (d.Max - d.Min)
	}
}

// Denormalize converts n in [0, 1] to engineering units. n is clamped.
func (d Descriptor) Denormalize(n float64) float64 {
	n = core.Clamp(n, 0, 1)

	switch d.Mapping {
	case MappingLogarithmic:
		if d.Min <= 0 {
			return d.Min
		}

		return d.Min * mapExp(n*math.Log(d.Max/d.Min))

	case MappingStepped:
		steps := d.Steps()
		if steps < 2 {
			return 0
		}

		return math.Round(n * float64(steps-1))

	default:
		return d.Min + n*(d.Max-d.Min)
	}
}

// DefaultNormalized returns the default value in normalized form.
func (d Descriptor) DefaultNormalized() float64 {
	return d.Normalize(d.Default)
}

// Index returns the stepped position for n, or -1 for continuous parameters.
func (d Descriptor) Index(n float64) int {
	if d.Mapping != MappingStepped {
		return -1
	}

	return int(d.Denormalize(n))
}
