package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-amp/amp/cabinet"
	"github.com/cwbudde/algo-amp/amp/distortion"
	"github.com/cwbudde/algo-amp/amp/param"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Latency is the processing delay reported to hosts, in samples. It does
// not depend on sample rate or block size.
const Latency = 256

// MaxBlockSize is the largest block size Configure accepts.
const MaxBlockSize = 1 << 16

// Engine is the amplifier signal path for one mono channel.
type Engine struct {
	store     *param.Store
	smoothing *param.Smoothing
	stages    []Stage

	state      atomic.Int32
	sampleRate float64
	maxBlock   int

	values  param.Values
	gains   []float64
	scratch []float64
}

// New builds an Engine around store. The engine starts Uninitialized and
// outputs silence until Configure succeeds.
func New(store *param.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	// Stages are built at the default rate so option errors surface here;
	// Configure sets the real rate.
	rate := core.DefaultProcessorConfig().SampleRate

	var distOpts []distortion.Option
	if cfg.morphSpan > 0 {
		distOpts = append(distOpts, distortion.WithMorphSpan(cfg.morphSpan))
	}

	var cabOpts []cabinet.Option
	if cfg.hasCrossfade {
		cabOpts = append(cabOpts, cabinet.WithCrossfade(cfg.crossfade))
	}

	tone, err := newToneStage(rate)
	if err != nil {
		return nil, err
	}

	drive, err := newDriveStage(rate, distOpts...)
	if err != nil {
		return nil, err
	}

	cab, err := newCabinetStage(rate, cabOpts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:     store,
		smoothing: param.NewSmoothing(store),
		stages: []Stage{
			&gainStage{id: param.InputGain},
			tone,
			drive,
			cab,
		},
	}

	if cfg.hasSmoothing {
		e.smoothing.SetDuration(cfg.smoothing)
	}

	return e, nil
}

// Configure prepares the engine for sampleRate and blocks of up to
// maxBlockSize samples. It recomputes every coefficient, clears all
// per-sample state and jumps every parameter to its current target.
//
// On error the engine keeps its previous configuration and state.
func (e *Engine) Configure(sampleRate float64, maxBlockSize int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if maxBlockSize < 1 || maxBlockSize > MaxBlockSize {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	if e.State() == StateProcessing {
		return ErrBusy
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithMaxBlockSize(maxBlockSize),
	)

	e.smoothing.Configure(cfg.SampleRate)

	ctx := Context{
		SampleRate:   cfg.SampleRate,
		MaxBlockSize: cfg.MaxBlockSize,
	}
	e.smoothing.Advance(&ctx.Params)

	for i, st := range e.stages {
		if err := st.Configure(ctx); err != nil {
			return fmt.Errorf("engine: configure stage %d: %w", i, err)
		}
	}

	if cap(e.gains) < cfg.MaxBlockSize {
		e.gains = make([]float64, cfg.MaxBlockSize)
		e.scratch = make([]float64, cfg.MaxBlockSize)
	}

	e.gains = e.gains[:cfg.MaxBlockSize]
	e.scratch = e.scratch[:cfg.MaxBlockSize]
	e.values = ctx.Params
	e.sampleRate = cfg.SampleRate
	e.maxBlock = cfg.MaxBlockSize
	e.state.Store(int32(StateReady))

	return nil
}

// State returns the lifecycle phase. Safe from any goroutine.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// SampleRate returns the configured rate, or 0 before Configure. Unlike
// State it reads a plain field and must not race with Configure.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// MaxBlockSize returns the configured block size, or 0 before Configure.
// Call it from the goroutine that configures the engine.
func (e *Engine) MaxBlockSize() int { return e.maxBlock }

// Latency returns the reported processing delay in samples.
func (e *Engine) Latency() int { return Latency }

// Store returns the parameter store the engine reads from.
func (e *Engine) Store() *param.Store { return e.store }

// SetParameter writes a normalized value for key.
func (e *Engine) SetParameter(key string, normalized float64) error {
	return e.store.Set(key, normalized)
}

// Parameter returns the normalized target for key.
func (e *Engine) Parameter(key string) (float64, error) {
	return e.store.Get(key)
}

// Reset clears every delay line, the bias follower and any running
// crossfade, and jumps parameters to their targets. Use it on transport
// stop. It has no effect before Configure.
func (e *Engine) Reset() {
	if e.State() != StateReady {
		return
	}

	e.smoothing.Reset()

	for _, st := range e.stages {
		st.Reset()
	}
}

// Process filters src into dst and returns the number of samples written,
// min(len(dst), len(src)). dst and src may be the same slice.
func (e *Engine) Process(dst, src []float64) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}

	if !e.state.CompareAndSwap(int32(StateReady), int32(StateProcessing)) {
		clear(dst[:n])
		return n
	}

	for off := 0; off < n; off += e.maxBlock {
		end := min(off+e.maxBlock, n)
		e.processChunk(dst[off:end], src[off:end])
	}

	e.state.Store(int32(StateReady))

	return n
}

// ProcessInPlace filters buf in place.
func (e *Engine) ProcessInPlace(buf []float64) {
	e.Process(buf, buf)
}

// ProcessFloat32 is Process for float32 buffers. Processing runs in
// float64 internally.
func (e *Engine) ProcessFloat32(dst, src []float32) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}

	if !e.state.CompareAndSwap(int32(StateReady), int32(StateProcessing)) {
		clear(dst[:n])
		return n
	}

	for off := 0; off < n; off += e.maxBlock {
		end := min(off+e.maxBlock, n)
		buf := e.scratch[:end-off]

		for i, x := range src[off:end] {
			buf[i] = float64(x)
		}

		e.processChunk(buf, buf)

		for i, y := range buf {
			dst[off+i] = float32(y)
		}
	}

	e.state.Store(int32(StateReady))

	return n
}

func (e *Engine) processChunk(dst, src []float64) {
	gains := e.gains[:len(dst)]
	v := &e.values

	for i, x := range src {
		x = core.Sanitize(x)
		e.smoothing.Advance(v)

		for _, st := range e.stages {
			x = st.ProcessSample(x, v)
		}

		dst[i] = x
		gains[i] = v[param.OutputGain]
	}

	vecmath.MulBlockInPlace(dst, gains)

	for i, y := range dst {
		dst[i] = core.Sanitize(y)
	}
}
