// Package distortion implements the preamp's tube-style waveshaper.
//
// A [Table] holds a precomputed asymmetric transfer curve. A [Saturation]
// tracks the output energy and drifts a bias offset into the shaper input,
// the way grid current shifts a triode's operating point. [Stage] ties the
// two together, filters the shaped signal through an 8 kHz rolloff and a
// 20 Hz DC blocker, and blends from a clean signal at drive 1 to full
// shaping as drive rises.
package distortion
