// Package engine runs the amplifier signal path.
//
// An [Engine] reads parameter targets from a caller-owned [param.Store],
// smooths them per sample and feeds each sample through an ordered list of
// [Stage] values: input gain, tone stack, distortion and cabinet. Output
// gain is collected per sample and applied to each block with one vector
// multiply.
//
// Process and its variants never fail and never allocate once Configure
// has succeeded. Configure and Reset must not overlap a Process call; the
// host is expected to serialize them. Parameter writes through the Store
// may happen from any goroutine at any time.
package engine
