package pruning

import (
	"runtime"
	"sync"
	"time"

	"github.com/katalvlaran/gophylo/buffer"
	"github.com/katalvlaran/gophylo/errs"
	"github.com/katalvlaran/gophylo/logging"
	"github.com/katalvlaran/gophylo/metrics"
)

// Run executes ops in schedule order against arena, using vec for every
// state-count-wide dot product. When rescale is true, every operation
// whose DestScaling != NoScaling has its destination block rescaled and
// its log-scale accumulator updated after the destination is written.
//
// An out-of-range buffer index is immediate and fatal: Run stops, appends
// that error to Result.Errors and reports OutOfRange as Result.WorstCode.
// A numerical fault (non-finite
// or negative partial) is recorded, the worst code is tracked, and the
// remaining schedule still runs.
//
// handle identifies the calling instance for log correlation only; log
// and rec may be nil (Nop logger, no-op recorder). Run records one
// UpdatePartialsObserved sample for the whole call, and one
// RescaleApplied/NumericalFault sample per pattern block that triggers one.
func Run(arena *buffer.Arena, ops []Operation, rescale bool, vec VectorOps, handle int, log *logging.Logger, rec *metrics.Recorder) Result {
	if log == nil {
		log = logging.Nop()
	}
	start := time.Now()
	groups := group(arena, ops)

	res := Result{}
	for _, g := range groups {
		if fatal := runGroup(arena, ops, g, rescale, vec, handle, log, rec, &res); fatal {
			break
		}
	}

	outcome := "ok"
	if res.WorstCode != errs.NoError {
		outcome = "error"
	}
	rec.UpdatePartialsObserved(outcome, time.Since(start).Seconds())
	return res
}

// footprint returns the set of partials-buffer indices op reads or
// writes, for conflict detection between operations.
func footprint(arena *buffer.Arena, op Operation) map[int]bool {
	fp := map[int]bool{op.Dest: true}
	if compact, idx, err := arena.ResolveSource(op.Src1); err == nil && !compact {
		fp[idx] = true
	}
	if compact, idx, err := arena.ResolveSource(op.Src2); err == nil && !compact {
		fp[idx] = true
	}
	return fp
}

// group partitions ops into maximal runs of schedule-adjacent operations
// whose partials-buffer footprints are pairwise disjoint, preserving
// schedule order across group boundaries (a barrier between groups).
func group(arena *buffer.Arena, ops []Operation) [][]int {
	var groups [][]int
	var current []int
	used := map[int]bool{}

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
			used = map[int]bool{}
		}
	}

	for i, op := range ops {
		fp := footprint(arena, op)
		conflict := false
		for b := range fp {
			if used[b] {
				conflict = true
				break
			}
		}
		if conflict {
			flush()
		}
		current = append(current, i)
		for b := range fp {
			used[b] = true
		}
	}
	flush()
	return groups
}

// runGroup executes the operations named by indices concurrently (bounded
// by GOMAXPROCS), folding each op's outcome into res. It returns true if a
// fatal (out-of-range) error occurred and the caller must stop.
func runGroup(arena *buffer.Arena, ops []Operation, indices []int, rescale bool, vec VectorOps, handle int, log *logging.Logger, rec *metrics.Recorder, res *Result) (fatal bool) {
	if len(indices) == 1 {
		err := executeOp(arena, ops[indices[0]], indices[0], rescale, vec, handle, log, rec)
		return foldResult(res, err)
	}

	workers := runtime.GOMAXPROCS(0)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	fatalErrs := make([]error, 0)
	numericalErrs := make([]error, 0)

	for _, idx := range indices {
		idx := idx
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			err := executeOp(arena, ops[idx], idx, rescale, vec, handle, log, rec)
			if err == nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if errs.CodeOf(err) == errs.OutOfRange {
				fatalErrs = append(fatalErrs, err)
			} else {
				numericalErrs = append(numericalErrs, err)
			}
		}()
	}
	wg.Wait()

	for _, err := range fatalErrs {
		res.Errors = append(res.Errors, err)
		res.WorstCode = worstOf(res.WorstCode, errs.CodeOf(err))
	}
	for _, err := range numericalErrs {
		res.Errors = append(res.Errors, err)
		res.WorstCode = worstOf(res.WorstCode, errs.CodeOf(err))
	}
	return len(fatalErrs) > 0
}

func foldResult(res *Result, err error) (fatal bool) {
	if err == nil {
		return false
	}
	res.Errors = append(res.Errors, err)
	code := errs.CodeOf(err)
	res.WorstCode = worstOf(res.WorstCode, code)
	return code == errs.OutOfRange
}
