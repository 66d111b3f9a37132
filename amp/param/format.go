package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// ErrInvalidValue is returned when display text cannot be parsed.
var ErrInvalidValue = errors.New("param: invalid value")

// Format renders the normalized value n for display.
func (d Descriptor) Format(n float64) string {
	plain := d.Denormalize(n)

	switch d.Display {
	case DisplayGainDecibel:
		return formatDB(core.LinearToDB(plain))
	case DisplayDecibel:
		return formatDB(plain)
	case DisplayPercent:
		return fmt.Sprintf("%.1f%%", plain*100)
	case DisplayChoice:
		i := int(plain)
		if i >= 0 && i < len(d.Choices) {
			return d.Choices[i]
		}

		return strconv.Itoa(i)
	default:
		return strconv.FormatFloat(plain, 'f', 2, 64)
	}
}

func formatDB(db float64) string {
	// Keep rounding noise around unity from printing as -0.00.
	if math.Abs(db) < 0.005 {
		db = 0
	}

	return fmt.Sprintf("%.2f dB", db)
}

// Parse converts display text back to a normalized value. Units are
// optional; choice parameters accept the label or the index.
func (d Descriptor) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)

	if d.Display == DisplayChoice {
		for i, c := range d.Choices {
			if strings.EqualFold(c, text) {
				return d.Normalize(float64(i)), nil
			}
		}
	}

	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(text, "%"), "dB"))

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidValue, d.Key, text)
	}

	switch d.Display {
	case DisplayGainDecibel:
		v = core.DBToLinear(v)
	case DisplayPercent:
		v /= 100
	}

	return d.Normalize(v), nil
}
