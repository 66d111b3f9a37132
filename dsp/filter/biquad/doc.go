// Package biquad provides the second-order IIR runtime used by the amplifier
// signal path.
//
// A [Section] runs Direct Form II Transposed on one set of [Coefficients].
// A [Chain] cascades a fixed number of sections and keeps their delay lines
// when coefficients are swapped, which is what the tone stack and cabinet
// simulator need for glitch-free parameter updates.
//
// Coefficient design lives in dsp/filter/design.
package biquad
