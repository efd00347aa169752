// Package imaging turns an image file, or a generated placeholder, into the
// packed BGRA frame the stream delivers on every capture tick.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Load decodes the image at path and returns it as a packed BGRA frame
// scaled to width x height.
func Load(path string, width, height int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %q: %w", path, err)
	}
	return FromImage(img, width, height), nil
}

// FromImage scales img to width x height and packs it as BGRA.
func FromImage(img image.Image, width, height int) []byte {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return packBGRA(rgba)
}

// TestPattern renders a placeholder card for running without an input image:
// a diagonal gradient with a centered disc.
func TestPattern(width, height int) []byte {
	w, h := float64(width), float64(height)
	dc := gg.NewContext(width, height)
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, color.RGBA{R: 0x1e, G: 0x3a, B: 0x5f, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x8f, G: 0x2d, B: 0x56, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	dc.SetRGB255(0xf0, 0xf0, 0xe8)
	dc.DrawCircle(w/2, h/2, math.Min(w, h)/4)
	dc.Fill()
	return FromImage(dc.Image(), width, height)
}

// packBGRA converts the RGBA raster into a tightly packed BGRA buffer.
func packBGRA(rgba *image.RGBA) []byte {
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		dst := out[y*w*4:]
		for x := 0; x < w; x++ {
			r, g, b, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			dst[x*4+0] = b
			dst[x*4+1] = g
			dst[x*4+2] = r
			dst[x*4+3] = a
		}
	}
	return out
}
