package imageio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	wfc "github.com/shaggyfox/WaveFunctionCollapse"
)

type fakeGrid struct {
	w, h   int
	pixels []wfc.Pixel
}

func (f *fakeGrid) Width() int  { return f.w }
func (f *fakeGrid) Height() int { return f.h }
func (f *fakeGrid) At(x, y int) wfc.Pixel {
	return f.pixels[y*f.w+x]
}

func checkerboard(w, h int) *fakeGrid {
	g := &fakeGrid{w: w, h: h, pixels: make([]wfc.Pixel, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				g.pixels[y*w+x] = wfc.Pixel{R: 0, G: 0, B: 0, A: 255}
			} else {
				g.pixels[y*w+x] = wfc.Pixel{R: 255, G: 255, B: 255, A: 255}
			}
		}
	}
	return g
}

func TestSavePNGRoundTrip(t *testing.T) {
	src := checkerboard(4, 4)
	path := filepath.Join(t.TempDir(), "out.png")
	assert.NoError(t, Save(path, src))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, src.Width(), loaded.Width())
	assert.Equal(t, src.Height(), loaded.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			assert.Equal(t, src.At(x, y), loaded.At(x, y))
		}
	}
}

func TestSaveJPEGDoesNotError(t *testing.T) {
	src := checkerboard(8, 8)
	path := filepath.Join(t.TempDir(), "out.jpg")
	assert.NoError(t, Save(path, src))
}

func TestSaveWebPDoesNotError(t *testing.T) {
	src := checkerboard(8, 8)
	path := filepath.Join(t.TempDir(), "out.webp")
	assert.NoError(t, Save(path, src))
}
