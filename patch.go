package wfc

import "hash/fnv"

// MaxPatches bounds the number of distinct patches a PatchIndex may hold.
// Exceeding it after symmetry expansion is a PatchCapacityExceededError,
// never a silent truncation.
const MaxPatches = 4096

// Patch is a unique N×N window of input pixels.
type Patch struct {
	Pixels  []Pixel // row-major, length N*N
	Weight  int     // input windows (post symmetry-expansion) that hashed here
	Allowed [4]PatchSet
}

// SymmetryFlags controls window enumeration and symmetry expansion
// during PatchIndex construction.
type SymmetryFlags struct {
	WrapX    bool // wrap input x-axis during window enumeration
	WrapY    bool // wrap input y-axis during window enumeration
	Rotate   bool // submit the window's three 90° rotations too
	MirrorV  bool // submit the window flipped top-to-bottom
	MirrorH  bool // submit the window flipped left-to-right
}

// PatchIndex is the immutable result of analysing an input image: every
// distinct N×N patch found, its frequency weight, and its per-direction
// adjacency relation to every other patch.
type PatchIndex struct {
	N       int
	Patches []Patch
}

// BuildPatchIndex enumerates every N×N window of src (honouring the wrap
// flags), expands each by the requested symmetries, deduplicates by
// pixel equality while accumulating weight, and derives the
// overlap-attach adjacency relation between all resulting patches.
func BuildPatchIndex(src PixelGrid, n int, flags SymmetryFlags) (*PatchIndex, error) {
	if n <= 0 {
		return nil, &ArgumentError{Message: "patch size must be positive"}
	}
	iw, ih := src.Width(), src.Height()

	xMax := iw - n
	if flags.WrapX {
		xMax = iw - 1
	}
	yMax := ih - n
	if flags.WrapY {
		yMax = ih - 1
	}
	if xMax < 0 || yMax < 0 {
		return nil, &InputTooSmallError{Width: iw, Height: ih, PatchSize: n}
	}

	idx := &PatchIndex{N: n}
	buckets := make(map[uint64][]int)
	windowCount := 0

	submit := func(px []Pixel) error {
		windowCount++
		h := hashPixels(px)
		for _, id := range buckets[h] {
			if pixelsEqual(idx.Patches[id].Pixels, px) {
				idx.Patches[id].Weight++
				return nil
			}
		}
		if len(idx.Patches) >= MaxPatches {
			return &PatchCapacityExceededError{Limit: MaxPatches}
		}
		cp := make([]Pixel, len(px))
		copy(cp, px)
		idx.Patches = append(idx.Patches, Patch{Pixels: cp, Weight: 1})
		buckets[h] = append(buckets[h], len(idx.Patches)-1)
		return nil
	}

	for y := 0; y <= yMax; y++ {
		for x := 0; x <= xMax; x++ {
			base := extractWindow(src, x, y, n, flags.WrapX, flags.WrapY)
			for _, variant := range expandSymmetry(base, n, flags) {
				if err := submit(variant); err != nil {
					return nil, err
				}
			}
		}
	}

	if windowCount == 0 || len(idx.Patches) == 0 {
		return nil, &InputTooSmallError{Width: iw, Height: ih, PatchSize: n}
	}

	deriveAdjacency(idx)
	return idx, nil
}

// extractWindow reads the n×n window whose top-left corner is (x, y),
// addressing modularly on whichever axes wrap.
func extractWindow(src PixelGrid, x, y, n int, wrapX, wrapY bool) []Pixel {
	iw, ih := src.Width(), src.Height()
	out := make([]Pixel, n*n)
	for dy := 0; dy < n; dy++ {
		sy := y + dy
		if wrapY {
			sy = ((sy % ih) + ih) % ih
		}
		for dx := 0; dx < n; dx++ {
			sx := x + dx
			if wrapX {
				sx = ((sx % iw) + iw) % iw
			}
			out[dy*n+dx] = src.At(sx, sy)
		}
	}
	return out
}

// expandSymmetry returns the variants a single extracted window should
// be submitted as, per the D4-only-when-all-three-flags-set rule.
func expandSymmetry(base []Pixel, n int, flags SymmetryFlags) [][]Pixel {
	variants := [][]Pixel{base}
	if flags.Rotate {
		variants = append(variants, rotations(base, n)...)
	}
	switch {
	case flags.Rotate && flags.MirrorV && flags.MirrorH:
		vm := mirrorVertical(base, n)
		variants = append(variants, vm)
		variants = append(variants, rotations(vm, n)...)
	default:
		if flags.MirrorV {
			variants = append(variants, mirrorVertical(base, n))
		}
		if flags.MirrorH {
			variants = append(variants, mirrorHorizontal(base, n))
		}
	}
	return variants
}

// rotations returns the three non-identity 90° clockwise rotations of w.
func rotations(w []Pixel, n int) [][]Pixel {
	r90 := rotate90(w, n)
	r180 := rotate90(r90, n)
	r270 := rotate90(r180, n)
	return [][]Pixel{r90, r180, r270}
}

func rotate90(w []Pixel, n int) []Pixel {
	out := make([]Pixel, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[x*n+(n-1-y)] = w[y*n+x]
		}
	}
	return out
}

func mirrorVertical(w []Pixel, n int) []Pixel {
	out := make([]Pixel, n*n)
	for y := 0; y < n; y++ {
		copy(out[y*n:(y+1)*n], w[(n-1-y)*n:(n-y)*n])
	}
	return out
}

func mirrorHorizontal(w []Pixel, n int) []Pixel {
	out := make([]Pixel, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[y*n+x] = w[y*n+(n-1-x)]
		}
	}
	return out
}

func pixelsEqual(a, b []Pixel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hashPixels(px []Pixel) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 4)
	for _, p := range px {
		buf[0], buf[1], buf[2], buf[3] = p.R, p.G, p.B, p.A
		h.Write(buf)
	}
	return h.Sum64()
}

// overlapAttach reports whether patches a and b may be placed adjacent in
// direction d: the N-1 row/column slab they would share is pixel-equal.
func overlapAttach(a, b Patch, d Direction, n int) bool {
	switch d {
	case TOP:
		// rows 0..n-2 of a equal rows 1..n-1 of b
		return pixelsEqual(a.Pixels[:(n-1)*n], b.Pixels[n:n*n])
	case BOTTOM:
		// rows 1..n-1 of a equal rows 0..n-2 of b
		return pixelsEqual(a.Pixels[n:n*n], b.Pixels[:(n-1)*n])
	case LEFT:
		for y := 0; y < n; y++ {
			if !pixelsEqual(a.Pixels[y*n:y*n+(n-1)], b.Pixels[y*n+1:y*n+n]) {
				return false
			}
		}
		return true
	case RIGHT:
		for y := 0; y < n; y++ {
			if !pixelsEqual(a.Pixels[y*n+1:y*n+n], b.Pixels[y*n:y*n+(n-1)]) {
				return false
			}
		}
		return true
	}
	return false
}

// deriveAdjacency fills every patch's Allowed[d] bitset.
func deriveAdjacency(idx *PatchIndex) {
	p := len(idx.Patches)
	for a := range idx.Patches {
		for d := 0; d < 4; d++ {
			idx.Patches[a].Allowed[d] = NewPatchSet(p)
		}
	}
	for a := 0; a < p; a++ {
		for b := 0; b < p; b++ {
			for _, d := range Directions {
				if overlapAttach(idx.Patches[a], idx.Patches[b], d, idx.N) {
					idx.Patches[a].Allowed[d].Set(b)
				}
			}
		}
	}
}
