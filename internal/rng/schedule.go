package rng

// WarmupSteps is the number of draws discarded from every freshly seeded
// generator before it is used.
const WarmupSteps = 100

// Mixing constants. Both multipliers are odd so each pass is a bijection on
// 32-bit values.
const (
	masterMul uint32 = 0xDEADBEEF
	masterAdd uint32 = 0xCAFEBABE
	rowMul    uint32 = 0x4D0DF4C7
	rowAdd    uint32 = 0x8980AB2B
)

// MasterState maps a user seed to the initial state of the master generator.
func MasterState(seed uint32) uint32 {
	return seed*masterMul + masterAdd
}

// RowState maps one draw of the master generator to the initial state of a row
// generator.
func RowState(draw uint32) uint32 {
	return draw*rowMul + rowAdd
}

// Master returns the warmed-up master generator for seed.
func Master(seed uint32) XorShift32 {
	return New(MasterState(seed)).StepForward(WarmupSteps)
}

// Schedule returns one generator per row, in row order. Row i always receives
// the generator built from the i-th draw of the master stream, so the result
// depends only on seed and height.
func Schedule(seed uint32, height uint32) []XorShift32 {
	master := Master(seed)
	rows := make([]XorShift32, height)
	for i := range rows {
		rows[i] = New(RowState(master.Next())).StepForward(WarmupSteps)
	}
	return rows
}
