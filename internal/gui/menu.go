package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/skyrmsim/internal/config"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

// RunInteractive opens the window on the preset menu.
func RunInteractive(opts Options) {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Title == "" {
		opts.Title = "skyrmsim"
	}
	initWindow(opts.Title, opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(nil, nil, opts)
	defer rl.UnloadRenderTexture(app.Target3)
	app.InMenu = true
	app.Interactive = true
	app.Presets = config.ListPresets()
	app.RunLoop()
}

func (a *App) updateMenu() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if len(a.Presets) == 0 {
		return true
	}
	if pressed(rl.KeyDown, rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Presets)
	}
	if pressed(rl.KeyUp, rl.KeyK) {
		a.Selected = (a.Selected - 1 + len(a.Presets)) % len(a.Presets)
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		name := a.Presets[a.Selected]
		if err := a.loadPreset(name); err != nil {
			log.Printf("preset %s: %v", name, err)
			a.Message = err.Error()
			return true
		}
		a.Opts.Title = name
		a.Message = ""
		a.InMenu = false
	}
	return true
}

func (a *App) loadPreset(name string) error {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset %q", name)
	}
	field, err := skyrmion.New(cfg.SkyrmionConfig())
	if err != nil {
		return err
	}
	a.setSim(cfg.NewController(), field)
	a.Opts.ImageScale = cfg.Scale
	return nil
}

func (a *App) drawMenu() {
	a.drawText("skyrmsim", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 30
	}

	if cfg := config.GetPreset(a.Presets[a.Selected]); cfg != nil {
		info := []string{
			fmt.Sprintf("grid       %d", cfg.GridSize),
			fmt.Sprintf("core       %.1f", cfg.CoreRadius),
			fmt.Sprintf("dmi        %.2f", cfg.DMI),
			fmt.Sprintf("strength   %.2f", cfg.Field.Strength),
			fmt.Sprintf("direction  %s", cfg.Field.Direction),
			fmt.Sprintf("pulse      %s", cfg.Field.PulseType),
			fmt.Sprintf("frequency  %.1f", cfg.Field.PulseFreq),
			fmt.Sprintf("amplitude  %.1f", cfg.Field.PulseAmp),
		}
		for i, l := range info {
			a.drawText(l, 400, 160+i*24, 16, ColText)
		}
	}

	if a.Message != "" {
		a.drawText(a.Message, 50, 640, 14, rl.Red)
	}
	a.drawText("[UP/DOWN] SELECT  [ENTER] START  [Q] QUIT", 50, 680, 14, ColTextDim)
}
