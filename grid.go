package wfc

// Cell is one grid position: the bitset of still-admissible patch ids,
// its cached Shannon entropy, and a per-direction cache of the union of
// allowed-neighbour sets implied by its current candidates.
type Cell struct {
	Candidates PatchSet
	Cache      [4]PatchSet
	Entropy    float64
}

// Collapsed reports whether exactly one candidate remains.
func (c *Cell) Collapsed() bool {
	return c.Candidates.Count() == 1
}

// Contradicted reports whether no candidate remains.
func (c *Cell) Contradicted() bool {
	return c.Candidates.Count() == 0
}

// Grid is the W×H array of Cells the Solver operates on. Boundary
// addressing is either bounded (out-of-range neighbours have no
// constraint) or seamless (indices wrap modulo W, H); the same policy
// is used by every neighbour lookup.
type Grid struct {
	W, H     int
	Seamless bool
	Index    *PatchIndex
	Cells    []Cell
}

// NewGrid allocates a W×H grid over index, sets every cell to the full
// candidate set, and runs an initial propagation pass to quiescence.
func NewGrid(index *PatchIndex, w, h int, seamless bool) (*Grid, error) {
	g := &Grid{W: w, H: h, Seamless: seamless, Index: index}
	g.Cells = make([]Cell, w*h)
	p := len(index.Patches)

	for i := range g.Cells {
		c := &g.Cells[i]
		c.Candidates = NewPatchSet(p)
		for id := 0; id < p; id++ {
			c.Candidates.Set(id)
		}
		refreshCache(c, index)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := ReduceAndPropagate(g, x, y, noFromDir); err != nil {
				return nil, err
			}
		}
	}

	for i := range g.Cells {
		c := &g.Cells[i]
		if c.Candidates.Count() > 1 {
			c.Entropy = computeEntropy(&c.Candidates, index)
		} else {
			c.Entropy = 0
		}
	}
	return g, nil
}

// At returns the cell at (x, y) in row-major order.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.W+x]
}

// Neighbour returns the coordinates of the d-neighbour of (x, y), and
// whether that neighbour is in range under the grid's boundary policy.
func (g *Grid) Neighbour(x, y int, d Direction) (nx, ny int, ok bool) {
	dx, dy := d.Offset()
	nx, ny = x+dx, y+dy
	if g.Seamless {
		nx = ((nx % g.W) + g.W) % g.W
		ny = ((ny % g.H) + g.H) % g.H
		return nx, ny, true
	}
	if nx < 0 || nx >= g.W || ny < 0 || ny >= g.H {
		return 0, 0, false
	}
	return nx, ny, true
}

// refreshCache recomputes c.Cache[d] for all d as the union over
// c.Candidates of each candidate's Allowed[d].
func refreshCache(c *Cell, index *PatchIndex) {
	p := len(index.Patches)
	for d := 0; d < 4; d++ {
		c.Cache[d] = NewPatchSet(p)
		for id := range c.Candidates.Iter {
			c.Cache[d].OrInto(&index.Patches[id].Allowed[d])
		}
	}
}
