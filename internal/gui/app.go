package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/export"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

const (
	screenW = 1280
	screenH = 720

	panel2DX, panel2DY, panel2DSize = 30, 70, 600
	panel3DX, panel3DY              = 660, 70
	panel3DW, panel3DH              = 590, 420

	maxTelemetry = 300
	gifEvery     = 3
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(18, 18, 22, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColTrail   = rl.NewColor(255, 80, 80, 255)
)

// Options configures the desktop window.
type Options struct {
	Title      string
	FPS        int
	ArrowStep  int
	ImageScale int
	GIFPath    string
	ImagePath  string
}

// App owns the window state for one field and controller.
type App struct {
	Ctrl  *efield.Controller
	Field *skyrmion.Field
	Opts  Options

	Spins skyrmion.SpinField
	Dyn   skyrmion.Dynamics

	Camera  rl.Camera3D
	Target3 rl.RenderTexture2D
	Font    rl.Font

	InMenu      bool
	Interactive bool
	Presets     []string
	Selected    int

	Running   bool
	Show3D    bool
	Recording bool
	Recorder  *export.GIFRecorder
	Message   string

	Telemetry []float64
	frame     int
}

func initWindow(title string, fps int) {
	rl.InitWindow(screenW, screenH, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when the system font is
// missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(ctrl *efield.Controller, field *skyrmion.Field, opts Options) *App {
	if opts.ArrowStep < 1 {
		opts.ArrowStep = 4
	}
	if opts.ImageScale < 1 {
		opts.ImageScale = 4
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "skyrmion.gif"
	}
	if opts.ImagePath == "" {
		opts.ImagePath = "skyrmion.png"
	}
	cam := rl.NewCamera3D(
		rl.NewVector3(14, 12, 14),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	a := &App{
		Opts:      opts,
		Camera:    cam,
		Target3:   rl.LoadRenderTexture(panel3DW, panel3DH),
		Font:      loadFont(),
		Running:   true,
		Show3D:    true,
		Recorder:  export.NewGIFRecorder(3 * gifEvery),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	if field != nil {
		a.setSim(ctrl, field)
	}
	return a
}

func (a *App) setSim(ctrl *efield.Controller, field *skyrmion.Field) {
	a.Ctrl = ctrl
	a.Field = field
	a.Spins = field.Spins()
	a.Dyn = field.Dynamics()
	a.Telemetry = a.Telemetry[:0]
	a.Running = true
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *efield.Controller, field *skyrmion.Field, opts Options) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Title == "" {
		opts.Title = "skyrmsim"
	}
	initWindow(opts.Title, opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(ctrl, field, opts)
	defer rl.UnloadRenderTexture(app.Target3)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			break
		}
		a.Draw()
		if a.Recording && a.frame%gifEvery == 0 {
			a.captureFrame()
		}
		a.frame++
	}
	if a.Recording {
		a.stopRecording()
	}
}

func pressed(keys ...int32) bool {
	for _, k := range keys {
		if rl.IsKeyPressed(k) || rl.IsKeyPressedRepeat(k) {
			return true
		}
	}
	return false
}

// Update applies input and advances the field. It returns false on quit.
func (a *App) Update() bool {
	if a.InMenu {
		return a.updateMenu()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		if !a.Interactive {
			return false
		}
		if a.Recording {
			a.stopRecording()
		}
		a.InMenu = true
		return true
	}

	switch {
	case pressed(rl.KeyLeft):
		a.Ctrl.NudgeStrength(-efield.StrengthStep)
	case pressed(rl.KeyRight):
		a.Ctrl.NudgeStrength(efield.StrengthStep)
	case pressed(rl.KeyUp):
		a.Ctrl.NudgeFreq(efield.FreqStep)
	case pressed(rl.KeyDown):
		a.Ctrl.NudgeFreq(-efield.FreqStep)
	case pressed(rl.KeyEqual, rl.KeyKpAdd):
		a.Ctrl.NudgeAmp(efield.AmpStep)
	case pressed(rl.KeyMinus, rl.KeyKpSubtract):
		a.Ctrl.NudgeAmp(-efield.AmpStep)
	}

	if rl.IsKeyPressed(rl.KeyD) {
		a.Message = "direction " + a.Ctrl.CycleDirection().String()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Message = "pulse " + string(a.Ctrl.CyclePulseType())
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.Show3D = !a.Show3D
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Field.ResetTime()
		a.Spins = a.Field.Spins()
		a.Dyn = a.Field.Dynamics()
		a.Telemetry = a.Telemetry[:0]
		a.Message = "time reset"
	}
	if rl.IsKeyPressed(rl.KeyG) {
		if a.Recording {
			a.stopRecording()
		} else {
			a.Recording = true
			a.Recorder.Reset()
			a.Message = "recording"
		}
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.saveImage()
	}

	if a.Show3D {
		rl.UpdateCamera(&a.Camera, rl.CameraOrbital)
	}

	if a.Running {
		a.Spins = a.Field.Step(a.Ctrl.Snapshot())
		a.Dyn = a.Field.Dynamics()
		a.Telemetry = append(a.Telemetry, a.Dyn.Center.X)
		if len(a.Telemetry) > maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
	}
	return true
}

func (a *App) captureFrame() {
	img := rl.LoadImageFromScreen()
	defer rl.UnloadImage(img)
	rl.ImageResize(img, screenW/2, screenH/2)
	a.Recorder.AddImage(img.ToImage())
}

func (a *App) stopRecording() {
	a.Recording = false
	n := a.Recorder.Len()
	if err := a.Recorder.Save(a.Opts.GIFPath); err != nil {
		log.Printf("gif: %v", err)
		a.Message = "gif failed"
		return
	}
	a.Message = fmt.Sprintf("saved %d frames to %s", n, a.Opts.GIFPath)
}

func (a *App) saveImage() {
	if err := export.SaveImage(a.Opts.ImagePath, export.SpinImage(a.Spins, a.Opts.ImageScale)); err != nil {
		log.Printf("image: %v", err)
		a.Message = "image failed"
		return
	}
	a.Message = "saved " + a.Opts.ImagePath
}

func (a *App) Draw() {
	if a.InMenu {
		rl.BeginDrawing()
		rl.ClearBackground(ColBg)
		a.drawMenu()
		rl.EndDrawing()
		return
	}
	if a.Show3D {
		a.render3D()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.draw2D()
	if a.Show3D {
		// render textures are stored upside down
		src := rl.NewRectangle(0, 0, panel3DW, -panel3DH)
		rl.DrawTextureRec(a.Target3.Texture, src, rl.NewVector2(panel3DX, panel3DY), rl.White)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("skyrmsim", 30, 24, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Opts.Title), 160, 28, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	if a.Recording {
		status, col = "REC", rl.Red
	}
	a.drawText(status, 1170, 24, 16, col)

	p := a.Ctrl.Snapshot()
	x, y := panel3DX, panel3DY+panel3DH+20
	lines := []string{
		fmt.Sprintf("time       %8.2f", a.Dyn.Time),
		fmt.Sprintf("center     (%6.2f, %6.2f)", a.Dyn.Center.X, a.Dyn.Center.Y),
		fmt.Sprintf("velocity   (%6.2f, %6.2f)", a.Dyn.Velocity.X, a.Dyn.Velocity.Y),
		fmt.Sprintf("rotation   %8.3f", a.Dyn.RotationFreq),
		fmt.Sprintf("drive      %+8.3f", a.Field.LastDrive()),
		"",
		fmt.Sprintf("strength   %8.2f", p.Strength),
		fmt.Sprintf("frequency  %8.1f", p.Freq),
		fmt.Sprintf("amplitude  %8.1f", p.Amp),
		fmt.Sprintf("direction  %8s", a.Ctrl.Direction()),
		fmt.Sprintf("pulse      %8s", a.Ctrl.PulseType()),
	}
	for i, l := range lines {
		a.drawText(l, x, y+i*16, 14, ColText)
	}

	a.DrawTelemetry(x+300, y, 280, 80)

	if a.Message != "" {
		a.drawText(a.Message, 30, 680, 14, ColAccent)
	}
	a.drawText("[<>] STRENGTH [^v] FREQ [+-] AMP [D] DIR [P] PULSE [R] RESET [V] 3D [G] GIF [SPACE] PAUSE [ESC] MENU [Q] QUIT", 240, 700, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 700, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the center-x history in the given rectangle.
func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("x: %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX, rectY+height+6, 14, ColText)
}
