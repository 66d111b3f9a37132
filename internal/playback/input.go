// Package playback streams the amplifier engine to the system audio device.
//
// A [Stream] pulls dry samples from an [Input], runs them through an
// engine and encodes the result as little-endian float32 for oto.
package playback

import (
	"math"
	"math/rand"
)

// Input fills dst with dry instrument samples.
type Input interface {
	Fill(dst []float64)
}

// Sine is a constant test tone.
type Sine struct {
	amp   float64
	phase float64
	inc   float64
}

// NewSine returns a tone of freqHz at amplitude amp.
func NewSine(freqHz, amp, sampleRate float64) *Sine {
	return &Sine{amp: amp, inc: 2 * math.Pi * freqHz / sampleRate}
}

// Fill writes the next len(dst) samples.
func (s *Sine) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.amp * math.Sin(s.phase)

		s.phase += s.inc
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// Pluck is a Karplus-Strong string retriggered at a fixed interval, a
// stand-in for a dry guitar signal.
type Pluck struct {
	line   []float64
	pos    int
	decay  float64
	amp    float64
	period int
	count  int
	rng    *rand.Rand
}

// NewPluck returns a string tuned to freqHz that is plucked every interval
// seconds. decay in (0, 1) sets the sustain; values near 1 ring longer.
func NewPluck(freqHz, amp, interval, decay, sampleRate float64) *Pluck {
	n := max(int(sampleRate/freqHz), 2)

	p := &Pluck{
		line:   make([]float64, n),
		decay:  decay,
		amp:    amp,
		period: max(int(interval*sampleRate), 1),
		rng:    rand.New(rand.NewSource(1)),
	}
	p.excite()

	return p
}

func (p *Pluck) excite() {
	for i := range p.line {
		p.line[i] = p.amp * (2*p.rng.Float64() - 1)
	}

	p.pos = 0
	p.count = 0
}

// Fill writes the next len(dst) samples.
func (p *Pluck) Fill(dst []float64) {
	n := len(p.line)

	for i := range dst {
		if p.count == p.period {
			p.excite()
		}

		next := (p.pos + 1) % n
		y := p.line[p.pos]
		p.line[p.pos] = p.decay * 0.5 * (y + p.line[next])
		p.pos = next
		p.count++

		dst[i] = y
	}
}
