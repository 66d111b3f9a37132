// Package param defines the amplifier's parameter layout and delivers
// parameter values from a control goroutine to the audio goroutine.
//
// A [Store] holds one normalized value per parameter in an atomic word, so
// the control side can write while the audio side reads without locks. The
// audio side feeds those targets through a [Smoothing] bank, which ramps
// each value with a one-pole [Smoother] and hands engineering values to the
// DSP stages as a [Values] array indexed by [ID].
//
// Keys are stable strings suitable for presets and host state. Values at the
// boundary are always normalized to [0, 1].
package param
