package pruning

import "github.com/ajroetker/go-highway/hwy"

// HWYOps is the VectorOps implementation used by the cpuvector backend.
// It processes each dot product in lane-width chunks through
// github.com/ajroetker/go-highway's portable SIMD primitives, with a
// scalar tail for any remainder — the same load/multiply/reduce/store
// shape the library's own README demonstrates.
type HWYOps struct{}

// Name implements VectorOps.
func (HWYOps) Name() string { return "cpuvector(" + hwy.CurrentName() + ")" }

// Dot implements VectorOps using hwy.Load/hwy.Mul/hwy.ReduceSum over
// float64 lanes, falling back to scalar arithmetic for the tail.
func (HWYOps) Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	lanes := hwy.MaxLanes[float64]()
	if lanes < 1 {
		lanes = 1
	}

	var sum float64
	i := 0
	for ; i+lanes <= n; i += lanes {
		va := hwy.Load(a[i : i+lanes])
		vb := hwy.Load(b[i : i+lanes])
		sum += hwy.ReduceSum(hwy.Mul(va, vb))
	}
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
