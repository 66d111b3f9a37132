// Package design computes RBJ-cookbook biquad coefficients for the
// amplifier's tone stack and cabinet voicings.
//
// The one-shot designers ([Lowpass], [Highpass], [Peak], [LowShelf],
// [HighShelf]) are convenient for analysis and tests. [Band] splits the same
// math into a frequency-dependent part computed once and a gain-dependent
// part evaluated in constant time, which is what the real-time path uses
// when a gain knob moves.
package design
