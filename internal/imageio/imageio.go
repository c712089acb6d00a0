// Package imageio bridges the core solver's PixelGrid contract to real
// codecs. The core never imports image or a codec package directly; this
// package is the only place that does.
package imageio

import (
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepteams/webp"
	"github.com/pkg/errors"

	wfc "github.com/shaggyfox/WaveFunctionCollapse"
)

// imageAdapter exposes a decoded image.Image as a wfc.PixelGrid without
// copying it into an intermediate buffer.
type imageAdapter struct {
	img image.Image
	ox  int
	oy  int
}

func (a *imageAdapter) Width() int  { return a.img.Bounds().Dx() }
func (a *imageAdapter) Height() int { return a.img.Bounds().Dy() }

func (a *imageAdapter) At(x, y int) wfc.Pixel {
	r, g, b, al := a.img.At(a.ox+x, a.oy+y).RGBA()
	return wfc.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(al >> 8)}
}

// Load decodes path via the standard image package (PNG, JPEG, GIF, and
// WebP once github.com/deepteams/webp's init has registered it) and
// returns it as a wfc.PixelGrid.
func Load(path string) (wfc.PixelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "imageio.Load")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "imageio.Load: decode %s", path)
	}
	b := img.Bounds()
	return &imageAdapter{img: img, ox: b.Min.X, oy: b.Min.Y}, nil
}

// Save encodes g to path, choosing the codec by file extension: ".webp"
// goes through github.com/deepteams/webp, ".jpg"/".jpeg" through
// image/jpeg, and anything else through image/png.
func Save(path string, g wfc.PixelGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "imageio.Save")
	}
	defer f.Close()

	if err := Encode(f, path, g); err != nil {
		return errors.Wrapf(err, "imageio.Save: encode %s", path)
	}
	return nil
}

// Encode writes g to w in the format implied by name's extension.
func Encode(w io.Writer, name string, g wfc.PixelGrid) error {
	rgba := toRGBA(g)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".webp":
		return webp.Encode(w, rgba, webp.DefaultOptions())
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, rgba, &jpeg.Options{Quality: 90})
	default:
		return png.Encode(w, rgba)
	}
}

func toRGBA(g wfc.PixelGrid) *image.RGBA {
	width, height := g.Width(), g.Height()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := g.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return out
}
