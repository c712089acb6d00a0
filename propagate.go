package wfc

// noFromDir is the sentinel "no excluded direction" value used for the
// outermost call into ReduceAndPropagate (grid init, or a caller that
// isn't arriving from any particular neighbour).
const noFromDir Direction = -1

type propagateItem struct {
	x, y    int
	fromDir Direction
}

// ReduceAndPropagate intersects cell (x, y)'s candidates with the
// constraint implied by each in-range neighbour's cache, and if the
// candidates shrank, refreshes the cell's derived state and recurses
// into its neighbours (excluding fromDir), continuing until a fixed
// point is reached or a cell is reduced to empty.
//
// The spec describes this recursively; here it runs over an explicit
// LIFO worklist instead; pushing RIGHT,BOTTOM,LEFT,TOP so that they pop
// as TOP,LEFT,BOTTOM,RIGHT visits directions depth-first in the same
// order recursion would, without recursion's stack-depth risk on large
// grids.
func ReduceAndPropagate(g *Grid, x, y int, fromDir Direction) error {
	stack := []propagateItem{{x, y, fromDir}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		changed, contradicted := reduceCell(g, item.x, item.y)
		if contradicted {
			return &ContradictionError{X: item.x, Y: item.y, LastX: -1, LastY: -1}
		}
		if !changed {
			continue
		}

		for i := len(Directions) - 1; i >= 0; i-- {
			d := Directions[i]
			if d == item.fromDir {
				continue
			}
			nx, ny, ok := g.Neighbour(item.x, item.y, d)
			if !ok {
				continue
			}
			stack = append(stack, propagateItem{nx, ny, d.Opposite()})
		}
	}
	return nil
}

// reduceCell performs a single cell's candidate reduction (spec §4.4
// steps 1-5), reporting whether candidates changed and whether the cell
// contradicted.
func reduceCell(g *Grid, x, y int) (changed, contradicted bool) {
	c := g.At(x, y)

	var old PatchSet
	old.CopyFrom(&c.Candidates)

	for _, d := range Directions {
		nx, ny, ok := g.Neighbour(x, y, d)
		if !ok {
			continue
		}
		neighbour := g.At(nx, ny)
		c.Candidates.AndInto(&neighbour.Cache[d.Opposite()])
	}

	if c.Candidates.Equals(&old) {
		return false, false
	}

	refreshCache(c, g.Index)
	if c.Candidates.Count() > 1 {
		c.Entropy = computeEntropy(&c.Candidates, g.Index)
	} else {
		c.Entropy = 0
	}

	if c.Candidates.Empty() {
		return true, true
	}
	return true, false
}
