package playback

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-amp/amp/engine"
)

// BytesPerSample is the size of one mono float32 frame.
const BytesPerSample = 4

// Stream is an io.Reader of processed audio in oto's float32 little-endian
// format. Read never fails; it is the pull side of the audio callback.
type Stream struct {
	eng   *engine.Engine
	input Input
	dry   []float64
	wet   []float64
}

// NewStream returns a stream running input through eng. eng must be
// configured; its block size sets the processing granularity.
func NewStream(eng *engine.Engine, input Input) *Stream {
	n := max(eng.MaxBlockSize(), 1)

	return &Stream{
		eng:   eng,
		input: input,
		dry:   make([]float64, n),
		wet:   make([]float64, n),
	}
}

// Read fills p with whole frames and returns the number of bytes written.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerSample
	written := 0

	for written < frames {
		n := min(frames-written, len(s.dry))
		dry, wet := s.dry[:n], s.wet[:n]

		s.input.Fill(dry)
		s.eng.Process(wet, dry)

		for i, y := range wet {
			off := (written + i) * BytesPerSample
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(y)))
		}

		written += n
	}

	return written * BytesPerSample, nil
}
