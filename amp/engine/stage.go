package engine

import (
	"fmt"

	"github.com/cwbudde/algo-amp/amp/cabinet"
	"github.com/cwbudde/algo-amp/amp/distortion"
	"github.com/cwbudde/algo-amp/amp/param"
	"github.com/cwbudde/algo-amp/amp/tonestack"
)

// Context carries the host configuration stages need, plus the parameter
// values the first processed sample will see.
type Context struct {
	SampleRate   float64
	MaxBlockSize int
	Params       param.Values
}

// Stage is one step of the per-sample signal path.
//
// Configure runs outside the audio goroutine and may allocate. Reset and
// ProcessSample run on the audio goroutine and must not.
type Stage interface {
	Configure(ctx Context) error
	Reset()
	ProcessSample(x float64, v *param.Values) float64
}

// gainStage scales by a linear-amplitude parameter.
type gainStage struct {
	id param.ID
}

func (g *gainStage) Configure(Context) error { return nil }

func (g *gainStage) Reset() {}

func (g *gainStage) ProcessSample(x float64, v *param.Values) float64 {
	return x * v[g.id]
}

type toneStage struct {
	ts *tonestack.ToneStack
}

func newToneStage(sampleRate float64) (*toneStage, error) {
	ts, err := tonestack.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("engine: tone stack: %w", err)
	}

	return &toneStage{ts: ts}, nil
}

func (t *toneStage) Configure(ctx Context) error {
	t.ts.SetGains(ctx.Params[param.Bass], ctx.Params[param.Mid], ctx.Params[param.Treble])
	return t.ts.SetSampleRate(ctx.SampleRate)
}

func (t *toneStage) Reset() { t.ts.Reset() }

func (t *toneStage) ProcessSample(x float64, v *param.Values) float64 {
	t.ts.SetGains(v[param.Bass], v[param.Mid], v[param.Treble])
	return t.ts.ProcessSample(x)
}

type driveStage struct {
	st *distortion.Stage
}

func newDriveStage(sampleRate float64, opts ...distortion.Option) (*driveStage, error) {
	st, err := distortion.NewStage(sampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: distortion: %w", err)
	}

	return &driveStage{st: st}, nil
}

func (d *driveStage) Configure(ctx Context) error {
	return d.st.SetSampleRate(ctx.SampleRate)
}

func (d *driveStage) Reset() { d.st.Reset() }

func (d *driveStage) ProcessSample(x float64, v *param.Values) float64 {
	return d.st.ProcessSample(x, v[param.Drive])
}

type cabinetStage struct {
	sim *cabinet.Simulator
}

func newCabinetStage(sampleRate float64, opts ...cabinet.Option) (*cabinetStage, error) {
	sim, err := cabinet.NewSimulator(sampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: cabinet: %w", err)
	}

	return &cabinetStage{sim: sim}, nil
}

func (c *cabinetStage) Configure(ctx Context) error {
	if err := c.sim.SetSampleRate(ctx.SampleRate); err != nil {
		return err
	}

	c.sim.SetProfile(cabinet.Profile(ctx.Params[param.Cabinet]))

	return nil
}

func (c *cabinetStage) Reset() { c.sim.Reset() }

func (c *cabinetStage) ProcessSample(x float64, v *param.Values) float64 {
	if p := cabinet.Profile(v[param.Cabinet]); p != c.sim.Target() {
		c.sim.Select(p)
	}

	return c.sim.ProcessSample(x, v[param.CabinetMix])
}
