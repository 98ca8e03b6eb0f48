package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

const svgBackground = "#0a0a0a"

// QuiverSVG draws the in-plane spin components as arrows on every step-th
// lattice site, coloured like SpinImage. Sites with a negligible in-plane
// part are drawn as dots.
func QuiverSVG(s skyrmion.SpinField, step int, cell float64) string {
	n := s.Size()
	if n == 0 {
		return ""
	}
	if step < 1 {
		step = 1
	}
	if cell <= 0 {
		cell = 8
	}

	size := float64(n) * cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, svgBackground))

	arrowLen := float64(step) * cell * 0.45
	for y := 0; y < n; y += step {
		for x := 0; x < n; x += step {
			sx, sy, sz := s.At(x, y)
			hex := SpinColor(sx, sy, sz).Hex()
			cx := (float64(x) + 0.5) * cell
			cy := (float64(y) + 0.5) * cell

			inPlane := math.Hypot(sx, sy)
			if inPlane < 0.05 {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, cell*0.15, hex))
				continue
			}

			dx, dy := sx*arrowLen, sy*arrowLen
			x0, y0 := cx-dx/2, cy-dy/2
			x1, y1 := cx+dx/2, cy+dy/2

			ang := math.Atan2(dy, dx)
			head := arrowLen * 0.35
			hx1 := x1 - head*math.Cos(ang-0.5)
			hy1 := y1 - head*math.Sin(ang-0.5)
			hx2 := x1 - head*math.Cos(ang+0.5)
			hy2 := y1 - head*math.Sin(ang+0.5)

			sb.WriteString(fmt.Sprintf(`<path stroke="%s" stroke-width="%.1f" fill="none" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f"/>
`, hex, cell*0.12, x0, y0, x1, y1, hx1, hy1, x1, y1, hx2, hy2))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// BrailleToSVG converts a braille character grid to SVG dots.
func BrailleToSVG(grid [][]rune, scale float64) string {
	rows := len(grid)
	if rows == 0 {
		return ""
	}
	cols := len(grid[0])

	width := float64(cols) * scale * 2
	height := float64(rows) * scale * 4

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, svgBackground))

	dotRadius := scale * 0.4

	for row := 0; row < rows; row++ {
		for col := 0; col < len(grid[row]); col++ {
			r := grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := r - 0x2800

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&braillePixels[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws points as a polyline fitted to width x height. With
// gridSize > 0 the view is the whole lattice instead of the path's bounds.
func TrajectoryToSVG(points []dynamo.Vec2, width, height int, gridSize float64, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var minX, maxX, minY, maxY float64
	if gridSize > 0 {
		maxX, maxY = gridSize, gridSize
	} else {
		minX, maxX, minY, maxY = bounds(points)
	}
	rangeX := maxX - minX
	rangeY := maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// bounds returns the padded bounding box of points.
func bounds(points []dynamo.Vec2) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}
