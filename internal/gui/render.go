package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/skyrmsim/internal/dynamo"
)

// worldSize is the edge length of the lattice in the 3D view.
const worldSize = 20.0

// spinColor maps the in-plane angle to hue and Sz to brightness.
func spinColor(sx, sy, sz float64) rl.Color {
	hue := math.Atan2(sy, sx) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	sat := math.Min(1, math.Hypot(sx, sy))
	val := 0.35 + 0.65*(1+sz)/2
	return rl.ColorFromHSV(float32(hue), float32(sat), float32(val))
}

func (a *App) cellSize() float32 {
	return float32(panel2DSize) / float32(a.Spins.Size())
}

func (a *App) toScreen(p dynamo.Vec2) rl.Vector2 {
	cell := a.cellSize()
	return rl.NewVector2(
		float32(panel2DX)+float32(p.X)*cell,
		float32(panel2DY)+float32(p.Y)*cell,
	)
}

func (a *App) draw2D() {
	rl.DrawRectangle(panel2DX, panel2DY, panel2DSize, panel2DSize, ColPanel)

	n := a.Spins.Size()
	step := a.Opts.ArrowStep
	cell := a.cellSize()
	length := float64(step) * float64(cell) * 0.45

	for y := step / 2; y < n; y += step {
		for x := step / 2; x < n; x += step {
			sx, sy, sz := a.Spins.At(x, y)
			base := a.toScreen(dynamo.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			drawArrow2D(base, sx*length, sy*length, spinColor(sx, sy, sz))
		}
	}

	pts := a.Dyn.Trajectory
	if len(pts) > 1 {
		strip := make([]rl.Vector2, len(pts))
		for i, p := range pts {
			strip[i] = a.toScreen(p)
		}
		rl.DrawLineStrip(strip, ColTrail)
	}

	c := a.toScreen(a.Dyn.Center)
	rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(a.Field.CoreRadius())*cell, ColSelect)
	rl.DrawCircleV(c, 3, ColTrail)

	rl.DrawRectangleLines(panel2DX, panel2DY, panel2DSize, panel2DSize, ColTextDim)
}

func drawArrow2D(base rl.Vector2, dx, dy float64, col rl.Color) {
	tip := rl.NewVector2(base.X+float32(dx), base.Y+float32(dy))
	rl.DrawLineV(base, tip, col)

	l := math.Hypot(dx, dy)
	if l < 1 {
		return
	}
	ang := math.Atan2(dy, dx)
	head := l * 0.35
	for _, side := range []float64{-1, 1} {
		a := ang + math.Pi - side*math.Pi/6
		end := rl.NewVector2(tip.X+float32(head*math.Cos(a)), tip.Y+float32(head*math.Sin(a)))
		rl.DrawLineV(tip, end, col)
	}
}

func (a *App) toWorld(x, y float64) rl.Vector3 {
	scale := worldSize / float64(a.Spins.Size())
	half := worldSize / 2
	return rl.NewVector3(float32(x*scale-half), 0, float32(y*scale-half))
}

func (a *App) render3D() {
	rl.BeginTextureMode(a.Target3)
	rl.ClearBackground(ColPanel)
	rl.BeginMode3D(a.Camera)

	rl.DrawGrid(20, 1)

	n := a.Spins.Size()
	step := a.Opts.ArrowStep + 1
	length := float32(worldSize/float64(n)) * float32(step) * 0.8

	for y := step / 2; y < n; y += step {
		for x := step / 2; x < n; x += step {
			sx, sy, sz := a.Spins.At(x, y)
			base := a.toWorld(float64(x), float64(y))
			tip := rl.NewVector3(
				base.X+float32(sx)*length,
				base.Y+float32(sz)*length,
				base.Z+float32(sy)*length,
			)
			col := spinColor(sx, sy, sz)
			rl.DrawLine3D(base, tip, col)
			rl.DrawCubeV(tip, rl.NewVector3(0.08, 0.08, 0.08), col)
		}
	}

	c := a.toWorld(a.Dyn.Center.X, a.Dyn.Center.Y)
	rl.DrawSphere(c, 0.15, ColTrail)
	pts := a.Dyn.Trajectory
	for i := 1; i < len(pts); i++ {
		rl.DrawLine3D(a.toWorld(pts[i-1].X, pts[i-1].Y), a.toWorld(pts[i].X, pts[i].Y), ColTrail)
	}

	rl.EndMode3D()
	rl.DrawText("3D", 10, 10, 16, ColText)
	rl.EndTextureMode()
}
