package wfc

// FinalImage renders g, requiring every cell to be collapsed first. Use
// this over PreviewImage once a Solve has completed; it rejects a grid
// still mid-propagation instead of silently averaging partial state.
func FinalImage(g *Grid) (PixelGrid, error) {
	for i := range g.Cells {
		if !g.Cells[i].Collapsed() {
			return nil, &ArgumentError{Message: "grid is not fully collapsed"}
		}
	}
	return PreviewImage(g), nil
}

// PreviewImage renders the current state of g as a PixelGrid, painting
// every cell as the weight-normalised average of the top-left pixel of
// its still-admissible patches (spec §4.6). It is a pure read over g —
// safe to call between collapse steps to show partial progress — and
// does not affect correctness; it is purely a display convenience for
// an external renderer.
func PreviewImage(g *Grid) PixelGrid {
	buf := &pixelBuffer{w: g.W, h: g.H, pixels: make([]Pixel, g.W*g.H)}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			buf.Set(x, y, previewColor(g.At(x, y), g.Index))
		}
	}
	return buf
}

func previewColor(c *Cell, index *PatchIndex) Pixel {
	var total, r, gg, b, a float64
	for id := range c.Candidates.Iter {
		w := float64(index.Patches[id].Weight)
		p := index.Patches[id].Pixels[0]
		total += w
		r += w * float64(p.R)
		gg += w * float64(p.G)
		b += w * float64(p.B)
		a += w * float64(p.A)
	}
	if total == 0 {
		return Pixel{}
	}
	return Pixel{
		R: uint8(r / total),
		G: uint8(gg / total),
		B: uint8(b / total),
		A: uint8(a / total),
	}
}
