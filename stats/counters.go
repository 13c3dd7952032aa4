package stats

import "sync/atomic"

// Counters collects render statistics updated concurrently by many
// worker goroutines. The zero value is ready to use.
type Counters struct {
	primitiveRayTests atomic.Int64
	splitCount        atomic.Int64
	upolyGenCount     atomic.Int64
}

// AddPrimitiveRayTest records one primitive/ray intersection attempt.
func (c *Counters) AddPrimitiveRayTest() {
	c.primitiveRayTests.Add(1)
}

// AddSplit records one primitive refine/split event.
func (c *Counters) AddSplit() {
	c.splitCount.Add(1)
}

// AddMicropolygons records n newly-diced micropolygons.
func (c *Counters) AddMicropolygons(n int64) {
	c.upolyGenCount.Add(n)
}

// PrimitiveRayTests returns the current count of primitive/ray tests.
func (c *Counters) PrimitiveRayTests() int64 {
	return c.primitiveRayTests.Load()
}

// SplitCount returns the current count of primitive splits.
func (c *Counters) SplitCount() int64 {
	return c.splitCount.Load()
}

// UpolyGenCount returns the current count of generated micropolygons.
func (c *Counters) UpolyGenCount() int64 {
	return c.upolyGenCount.Load()
}
