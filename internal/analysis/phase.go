package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/sim"
)

// PhasePortrait2D holds points for a 2D scatter plot.
type PhasePortrait2D struct {
	XLabel, YLabel string
	Points         []dynamo.Vec2
}

// DriveResponse pairs the scalar drive with a core coordinate (axis 0 = x,
// 1 = y) for every record. A direct position law collapses onto a line.
func DriveResponse(records []sim.Record, axis int) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XLabel: "drive",
		YLabel: "center x",
		Points: make([]dynamo.Vec2, 0, len(records)),
	}
	if axis == 1 {
		portrait.YLabel = "center y"
	}

	for _, r := range records {
		v := r.Center.X
		if axis == 1 {
			v = r.Center.Y
		}
		portrait.Points = append(portrait.Points, dynamo.Vec2{X: r.Drive, Y: v})
	}

	return portrait
}

// CenterPath turns records into a portrait of the core path.
func CenterPath(records []sim.Record) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XLabel: "x",
		YLabel: "y",
		Points: make([]dynamo.Vec2, 0, len(records)),
	}
	for _, r := range records {
		portrait.Points = append(portrait.Points, r.Center)
	}
	return portrait
}

// PhasePortraitToASCII converts a portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// StroboscopicSection samples the core once per pulse period 2π/freq,
// starting at the first record. A locked response collapses to few points.
func StroboscopicSection(records []sim.Record, freq float64) *PhasePortrait2D {
	section := &PhasePortrait2D{XLabel: "x", YLabel: "y", Points: make([]dynamo.Vec2, 0)}
	if len(records) == 0 || freq <= 0 {
		return section
	}

	period := 2 * math.Pi / freq
	nextT := records[0].Time
	for _, r := range records {
		if r.Time+1e-12 >= nextT {
			section.Points = append(section.Points, r.Center)
			nextT += period
		}
	}

	return section
}
