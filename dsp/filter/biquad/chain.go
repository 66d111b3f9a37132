package biquad

// Chain is a fixed-length cascade of sections processed in series.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with one section per coefficient set.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample runs x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes every delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Len returns the number of sections.
func (c *Chain) Len() int {
	return len(c.sections)
}

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// SetCoefficients replaces the coefficients of section i and keeps its
// delay line.
func (c *Chain) SetCoefficients(i int, coeffs Coefficients) {
	c.sections[i].Coefficients = coeffs
}

// UpdateCoefficients swaps all coefficient sets. When the count matches the
// delay lines are kept; otherwise the sections are rebuilt with zero state.
func (c *Chain) UpdateCoefficients(coeffs ...Coefficients) {
	if len(coeffs) != len(c.sections) {
		c.sections = make([]Section, len(coeffs))
	}

	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Coefficients returns a copy of every section's coefficients.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// State snapshots every delay line.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores delay lines saved with State. Extra entries are ignored.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		if i >= len(states) {
			return
		}

		c.sections[i].SetState(states[i])
	}
}
