// Package rng provides the fast, reproducible bit-mixing generator used to fill
// rasters and the scheduler that derives one generator per output row.
//
// None of this is suitable for cryptographic use.
package rng

// zeroStateFallback replaces a zero state, which is a fixed point of the
// shift-xor mix and would otherwise produce an endless run of zeros.
const zeroStateFallback uint32 = 0x9E3779B9

// XorShift32 is a 32-bit xorshift generator (shifts 13, 17, 5).
//
// It is a plain value: copying it forks the stream. Each row of a raster owns
// its own copy, so a generator is never shared between goroutines.
type XorShift32 struct {
	x uint32
}

// New returns a generator whose state is seed. A zero seed is replaced by a
// fixed non-zero state.
func New(seed uint32) XorShift32 {
	if seed == 0 {
		seed = zeroStateFallback
	}
	return XorShift32{x: seed}
}

// State returns the current internal state.
func (g XorShift32) State() uint32 {
	return g.x
}

// Next advances the generator and returns the new state.
func (g *XorShift32) Next() uint32 {
	x := g.x
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.x = x
	return x
}

// StepForward draws and discards n values and returns the advanced generator.
// It is used to move a freshly seeded state away from its seed.
func (g XorShift32) StepForward(n int) XorShift32 {
	for i := 0; i < n; i++ {
		g.Next()
	}
	return g
}
