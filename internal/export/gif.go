package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// GIFRecorder collects frames for an animated GIF.
type GIFRecorder struct {
	frames []*image.Paletted
	delay  int
}

// NewGIFRecorder sets the per-frame delay in hundredths of a second.
func NewGIFRecorder(delay int) *GIFRecorder {
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{frames: make([]*image.Paletted, 0), delay: delay}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }
func (r *GIFRecorder) Reset()   { r.frames = r.frames[:0] }

func (r *GIFRecorder) Add(frame *image.Paletted) {
	r.frames = append(r.frames, frame)
}

// AddImage quantises a true-colour frame to the web-safe palette.
func (r *GIFRecorder) AddImage(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	r.Add(p)
}

// Encode writes the animation. The logical screen covers every frame, so
// frames recorded after a terminal resize still fit.
func (r *GIFRecorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	var screen image.Rectangle
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
		screen = screen.Union(frame.Bounds())
	}
	anim.Config = image.Config{Width: screen.Max.X, Height: screen.Max.Y}
	return gif.EncodeAll(w, &anim)
}

// Save writes the recording to path. An empty recording writes nothing.
func (r *GIFRecorder) Save(path string) (err error) {
	if len(r.frames) == 0 {
		return nil
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
	return r.Encode(f)
}

// Braille dot bits per (row, column) within one character cell.
var braillePixels = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// BrailleFrame rasterises a braille character grid to a two-colour frame,
// each character cell becoming charW x charH pixels.
func BrailleFrame(grid [][]rune, charW, charH int, fg color.Color) *image.Paletted {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	img := image.NewPaletted(image.Rect(0, 0, cols*charW, rows*charH), color.Palette{color.Black, fg})

	dotW, dotH := charW/2, charH/4
	for row := 0; row < rows; row++ {
		for col := 0; col < cols && col < len(grid[row]); col++ {
			r := grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := r - 0x2800
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&braillePixels[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}
