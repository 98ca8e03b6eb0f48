package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// SpinColor maps a unit spin to a colour: hue is the in-plane angle,
// saturation the in-plane magnitude and value (1+Sz)/2, so an up core is
// white, the wall saturated and the down background black.
func SpinColor(sx, sy, sz float64) colorful.Color {
	hue := math.Atan2(sy, sx) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	sat := math.Min(1, math.Hypot(sx, sy))
	val := math.Max(0, math.Min(1, (1+sz)/2))
	return colorful.Hsv(hue, sat, val)
}

// SpinImage renders one pixel per lattice site (row = y) and scales the
// result by an integer factor with nearest-neighbour sampling.
func SpinImage(s skyrmion.SpinField, scale int) *image.NRGBA {
	n := s.Size()
	base := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r, g, b := SpinColor(s.At(x, y)).RGB255()
			base.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}

	if scale <= 1 || n == 0 {
		return base
	}

	dst := image.NewNRGBA(image.Rect(0, 0, n*scale, n*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), draw.Src, nil)
	return dst
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// SaveImage picks the encoder from the file extension (.png or .webp).
func SaveImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("unsupported image format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if ext == ".webp" {
		return WriteWebP(f, img)
	}
	return WritePNG(f, img)
}
