package wfc

import "math"

// DefaultMaxRestarts is used when SolverOptions.MaxRestarts is <= 0.
const DefaultMaxRestarts = 50

// SolverOptions configures the outer solve loop.
type SolverOptions struct {
	// MaxRestarts bounds how many times the Solver restarts from a fresh
	// Grid after a contradiction before giving up. <= 0 uses
	// DefaultMaxRestarts.
	MaxRestarts int
}

// SolverContext carries everything a solve needs: the immutable
// PatchIndex, the output dimensions and boundary policy, the random
// source, and restart policy. The core never owns global state; a
// caller constructs one of these and calls Solve.
type SolverContext struct {
	Index    *PatchIndex
	W, H     int
	Seamless bool
	RNG      RandomSource
	Options  SolverOptions
}

// SolveResult is a completed, fully-collapsed Grid plus how many
// restarts it took to get there.
type SolveResult struct {
	Grid     *Grid
	Restarts int
}

// Solve drives the outer loop: build a fresh Grid, repeatedly select the
// lowest-entropy undetermined cell, collapse it by weighted sample, and
// propagate, until every cell is collapsed or a contradiction is hit. On
// contradiction it restarts from a fresh Grid (never backtracks), up to
// Options.MaxRestarts times.
func (sc *SolverContext) Solve() (*SolveResult, error) {
	maxRestarts := sc.Options.MaxRestarts
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxRestarts
	}

	var last *ContradictionError
	for attempt := 0; attempt <= maxRestarts; attempt++ {
		grid, err := NewGrid(sc.Index, sc.W, sc.H, sc.Seamless)
		if err != nil {
			ce, ok := err.(*ContradictionError)
			if !ok {
				return nil, err
			}
			last = ce
			continue
		}

		if err := runToCompletion(grid, sc.Index, sc.RNG); err != nil {
			ce, ok := err.(*ContradictionError)
			if !ok {
				return nil, err
			}
			last = ce
			continue
		}

		return &SolveResult{Grid: grid, Restarts: attempt}, nil
	}

	return nil, &RestartBudgetExceededError{Attempts: maxRestarts + 1, Last: last}
}

// runToCompletion repeatedly collapses the lowest-entropy cell until
// every cell is collapsed, or propagation surfaces a contradiction.
func runToCompletion(g *Grid, index *PatchIndex, rng RandomSource) error {
	lastX, lastY := -1, -1
	for {
		x, y, found := selectLowestEntropy(g)
		if !found {
			return nil
		}

		lastX, lastY = x, y
		if err := collapseCell(g, index, rng, x, y); err != nil {
			if ce, ok := err.(*ContradictionError); ok {
				ce.LastX, ce.LastY = lastX, lastY
			}
			return err
		}
	}
}

// selectLowestEntropy scans the grid row-major and returns the
// undetermined cell (candidate count > 1) with the smallest entropy,
// ties broken by scan order.
func selectLowestEntropy(g *Grid) (x, y int, found bool) {
	best := math.Inf(1)
	for yy := 0; yy < g.H; yy++ {
		for xx := 0; xx < g.W; xx++ {
			c := g.At(xx, yy)
			if c.Candidates.Count() <= 1 {
				continue
			}
			if !found || c.Entropy < best {
				best = c.Entropy
				x, y = xx, yy
				found = true
			}
		}
	}
	return
}

// collapseCell picks a patch for (x, y) by weighted sample, sets its
// candidates to that singleton, refreshes its cache, and propagates the
// change to every neighbour.
func collapseCell(g *Grid, index *PatchIndex, rng RandomSource, x, y int) error {
	c := g.At(x, y)
	id := weightedSample(&c.Candidates, index, rng)
	c.Candidates.SetTo(id)
	c.Entropy = 0
	refreshCache(c, index)

	for _, d := range Directions {
		nx, ny, ok := g.Neighbour(x, y, d)
		if !ok {
			continue
		}
		if err := ReduceAndPropagate(g, nx, ny, d.Opposite()); err != nil {
			return err
		}
	}
	return nil
}
