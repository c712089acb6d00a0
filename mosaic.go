package wfc

import "math"

// NewPatchMosaic lays out every distinct patch in idx as an N×N tile in
// a roughly square grid, recovered from the C prototype's on-screen tile
// atlas debug view (original_source/collapse.c's
// overlap_analyse_image). It is a diagnostic render, never a solver
// input.
func NewPatchMosaic(idx *PatchIndex) PixelGrid {
	n := idx.N
	cols := int(math.Ceil(math.Sqrt(float64(len(idx.Patches)))))
	if cols == 0 {
		cols = 1
	}
	rows := (len(idx.Patches) + cols - 1) / cols

	buf := &pixelBuffer{w: cols * n, h: rows * n, pixels: make([]Pixel, cols*n*rows*n)}
	for id, p := range idx.Patches {
		tileX := (id % cols) * n
		tileY := (id / cols) * n
		for dy := 0; dy < n; dy++ {
			for dx := 0; dx < n; dx++ {
				buf.Set(tileX+dx, tileY+dy, p.Pixels[dy*n+dx])
			}
		}
	}
	return buf
}
