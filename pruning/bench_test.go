package pruning_test

import (
	"testing"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/pruning"
)

func benchArena(b *testing.B, patterns, states int) (*buffer.Arena, []pruning.Operation) {
	b.Helper()
	spec := buffer.Spec{
		TipCount:          2,
		PartialsCount:     1,
		CompactCount:      2,
		StateCount:        states,
		PatternCount:      patterns,
		EigenCount:        0,
		MatrixCount:       2,
		RateCategoryCount: 1,
		VectorWidth:       4,
	}
	arena, err := buffer.NewArena(spec)
	if err != nil {
		b.Fatal(err)
	}
	sp := arena.SPadded()
	identity := make([]float64, states*states)
	for i := 0; i < states; i++ {
		identity[i*states+i] = 1
	}
	if err := arena.SetTransitionMatrix(0, 0, identity); err != nil {
		b.Fatal(err)
	}
	if err := arena.SetTransitionMatrix(1, 0, identity); err != nil {
		b.Fatal(err)
	}
	codes := make([]int32, patterns)
	for i := range codes {
		codes[i] = int32(i % states)
	}
	if err := arena.SetTipStates(0, codes); err != nil {
		b.Fatal(err)
	}
	if err := arena.SetTipStates(1, codes); err != nil {
		b.Fatal(err)
	}
	_ = sp
	ops := []pruning.Operation{
		{Dest: 0, DestScaling: 0, Src1: 1, Src1Matrix: 0, Src2: 2, Src2Matrix: 1},
	}
	return arena, ops
}

func BenchmarkRun_ScalarOps(b *testing.B) {
	arena, ops := benchArena(b, 512, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pruning.Run(arena, ops, true, pruning.ScalarOps{}, 0, nil, nil)
	}
}

func BenchmarkRun_HWYOps(b *testing.B) {
	arena, ops := benchArena(b, 512, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pruning.Run(arena, ops, true, pruning.HWYOps{}, 0, nil, nil)
	}
}
