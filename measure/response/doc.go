// Package response measures the amplifier's building blocks in the
// frequency domain.
//
// [Capture] records the impulse response of any per-sample processor,
// [Analyze] turns a time-domain signal into a magnitude [Spectrum] with one
// FFT, and [Harmonics] reports the harmonic distortion of a sine passed
// through a nonlinear stage.
//
//	ir := response.Capture(8192, chain.ProcessSample)
//	spec, err := response.Analyze(ir, 48000, 0)
//	fmt.Printf("%.2f dB at 1 kHz\n", spec.DB(1000))
package response
