package export

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

func testField(t *testing.T) skyrmion.SpinField {
	t.Helper()
	f, err := skyrmion.New(skyrmion.Config{GridSize: 24, CoreRadius: 4, Center: dynamo.Vec2{X: 12, Y: 12}, DMI: 0.8})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	return f.Step(efield.NewController().Snapshot())
}

func TestSpinColor(t *testing.T) {
	tests := []struct {
		name       string
		sx, sy, sz float64
		check      func(r, g, b uint8) bool
	}{
		{"core up is white", 0, 0, 1, func(r, g, b uint8) bool { return r == 255 && g == 255 && b == 255 }},
		{"background down is black", 0, 0, -1, func(r, g, b uint8) bool { return r == 0 && g == 0 && b == 0 }},
		{"in-plane +x is red", 1, 0, 0, func(r, g, b uint8) bool { return r > 100 && g == 0 && b == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := SpinColor(tt.sx, tt.sy, tt.sz).RGB255()
			if !tt.check(r, g, b) {
				t.Errorf("unexpected colour (%d,%d,%d)", r, g, b)
			}
		})
	}
}

func TestSpinImageScale(t *testing.T) {
	img := SpinImage(testField(t), 3)
	if img.Bounds().Dx() != 72 || img.Bounds().Dy() != 72 {
		t.Fatalf("expected 72x72, got %v", img.Bounds())
	}

	// core is bright, corner is dark
	core := img.NRGBAAt(12*3+1, 12*3+1)
	corner := img.NRGBAAt(0, 0)
	if int(core.R)+int(core.G)+int(core.B) <= int(corner.R)+int(corner.G)+int(corner.B) {
		t.Errorf("core %v should be brighter than corner %v", core, corner)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, SpinImage(testField(t), 1)); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 24 {
		t.Errorf("expected width 24, got %d", img.Bounds().Dx())
	}
}

func TestWriteWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWebP(&buf, SpinImage(testField(t), 2)); err != nil {
		t.Fatalf("webp: %v", err)
	}
	data := buf.Bytes()
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Error("output is not a RIFF/WEBP container")
	}
}

func TestSaveImage_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.bmp")
	if err := SaveImage(path, SpinImage(testField(t), 1)); err == nil {
		t.Error("expected error for .bmp")
	}
}

func TestGIFRecorder(t *testing.T) {
	rec := NewGIFRecorder(3)
	img := SpinImage(testField(t), 1)
	rec.AddImage(img)
	rec.AddImage(img)

	if rec.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", rec.Len())
	}

	path := filepath.Join(t.TempDir(), "run.gif")
	if err := rec.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("GIF89a")) {
		t.Error("missing GIF header")
	}

	rec.Reset()
	empty := filepath.Join(t.TempDir(), "empty.gif")
	if err := rec.Save(empty); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Error("empty recording should not create a file")
	}
}

func TestGIFRecorderGrowingFrames(t *testing.T) {
	small := [][]rune{{0x28FF, 0x2801}, {0x2800, 0x2880}}
	large := make([][]rune, 6)
	for i := range large {
		large[i] = []rune(strings.Repeat(string(rune(0x28FF)), 6))
	}

	rec := NewGIFRecorder(3)
	rec.Add(BrailleFrame(small, 8, 16, color.White))
	rec.Add(BrailleFrame(large, 8, 16, color.White))

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(anim.Image))
	}
	if anim.Config.Width != 6*8 || anim.Config.Height != 6*16 {
		t.Errorf("screen = %dx%d, want %dx%d", anim.Config.Width, anim.Config.Height, 6*8, 6*16)
	}
}

func TestBrailleFrame(t *testing.T) {
	grid := [][]rune{{0x2800 | 0x01, 0x2800}}
	frame := BrailleFrame(grid, 8, 16, color.White)

	if frame.Bounds().Dx() != 16 || frame.Bounds().Dy() != 16 {
		t.Fatalf("unexpected bounds %v", frame.Bounds())
	}
	if frame.ColorIndexAt(0, 0) != 1 {
		t.Error("top-left dot should be set")
	}
	if frame.ColorIndexAt(12, 0) != 0 {
		t.Error("empty cell should stay background")
	}
}

func TestQuiverSVG(t *testing.T) {
	svg := QuiverSVG(testField(t), 4, 6)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected arrows")
	}
	if QuiverSVG(skyrmion.SpinField{}, 1, 1) != "" {
		t.Error("empty field should give empty svg")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	points := []dynamo.Vec2{{X: 10, Y: 10}, {X: 12, Y: 11}, {X: 14, Y: 10}}

	svg := TrajectoryToSVG(points, 200, 200, 0, "#00ffff")
	if !strings.Contains(svg, `stroke="#00ffff"`) || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path: %s", svg)
	}

	if TrajectoryToSVG(points[:1], 200, 200, 0, "#fff") != "" {
		t.Error("a single point has no path")
	}

	full := TrajectoryToSVG(points, 100, 100, 100, "#fff")
	if !strings.Contains(full, "M10.0,10.0") {
		t.Errorf("grid-scaled path should start at 10,10: %s", full)
	}
}

func TestBrailleToSVG(t *testing.T) {
	grid := [][]rune{{0x2800 | 0x01 | 0x80}}
	svg := BrailleToSVG(grid, 2)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
}
