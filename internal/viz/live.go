package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/export"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

const (
	defaultWidth    = 56
	defaultHeight   = 28
	minCanvasWidth  = 20
	minCanvasHeight = 10
	panelWidth      = 50
	historyCapacity = 300
	tickInterval    = 33 * time.Millisecond
)

type TickMsg time.Time

// Options configures a live session.
type Options struct {
	Label      string
	ArrowStep  int
	ImageScale int
	GIFPath    string
	ImagePath  string
	SVGPath    string
	Start3D    bool
}

func DefaultOptions() Options {
	return Options{
		Label:      "néel skyrmion",
		ArrowStep:  4,
		ImageScale: 4,
		GIFPath:    "skyrmion.gif",
		ImagePath:  "skyrmion.png",
		SVGPath:    "skyrmion.svg",
	}
}

// Model steps one field per tick and renders it as braille arrows.
type Model struct {
	ctrl  *efield.Controller
	field *skyrmion.Field
	opts  Options

	spins skyrmion.SpinField
	dyn   skyrmion.Dynamics

	width, height int
	canvas        *Canvas
	wire          *Wireframe
	camera        *Camera
	view3D        bool

	running   bool
	showHelp  bool
	recording bool
	recorder  *export.GIFRecorder
	message   string

	centerX []float64
	drive   []float64
}

func NewModel(ctrl *efield.Controller, field *skyrmion.Field, opts Options) Model {
	if opts.ArrowStep < 1 {
		opts.ArrowStep = DefaultOptions().ArrowStep
	}
	return Model{
		ctrl:     ctrl,
		field:    field,
		opts:     opts,
		spins:    field.Spins(),
		dyn:      field.Dynamics(),
		width:    defaultWidth,
		height:   defaultHeight,
		canvas:   NewCanvas(defaultWidth, defaultHeight),
		wire:     NewWireframe(),
		camera:   NewCamera(),
		view3D:   opts.Start3D,
		running:  true,
		recorder: export.NewGIFRecorder(3),
		centerX:  make([]float64, 0, historyCapacity),
		drive:    make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.recorder.Add(export.BrailleFrame(m.canvas.Grid, 8, 16, themeColor(CurrentTheme.Field)))
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "left":
		m.ctrl.NudgeStrength(-efield.StrengthStep)
	case "right":
		m.ctrl.NudgeStrength(efield.StrengthStep)
	case "up":
		m.ctrl.NudgeFreq(efield.FreqStep)
	case "down":
		m.ctrl.NudgeFreq(-efield.FreqStep)
	case "+", "=":
		m.ctrl.NudgeAmp(efield.AmpStep)
	case "-", "_":
		m.ctrl.NudgeAmp(-efield.AmpStep)
	case "d":
		m.message = "direction " + m.ctrl.CycleDirection().String()
	case "p":
		m.message = "pulse " + string(m.ctrl.CyclePulseType())
	case "r":
		m.reset()
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.recorder.Reset()
			m.message = "recording"
		}
	case "t":
		m.message = "theme " + NextTheme().Name
	case "v":
		m.view3D = !m.view3D
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "]":
		m.camera.ZoomIn()
	case "[":
		m.camera.ZoomOut()
	case "s":
		m.saveImage()
	case "c":
		m.saveCanvas()
	case "?":
		m.showHelp = !m.showHelp
	}
	m.draw()
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := max(minCanvasWidth, w-panelWidth-4)
	ch := max(minCanvasHeight, h-4)
	// keep the lattice square in dots: 2 dots per column, 4 per row
	side := min(cw*2, ch*4)
	m.width, m.height = side/2, side/4
	m.canvas = NewCanvas(m.width, m.height)
}

// step advances the field by one tick with the current configuration.
func (m *Model) step() {
	m.spins = m.field.Step(m.ctrl.Snapshot())
	m.dyn = m.field.Dynamics()
	m.centerX = pushHistory(m.centerX, m.dyn.Center.X)
	m.drive = pushHistory(m.drive, m.field.LastDrive())
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset restarts the pulse clock and clears the history; the field
// configuration is kept.
func (m *Model) reset() {
	m.field.ResetTime()
	m.spins = m.field.Spins()
	m.dyn = m.field.Dynamics()
	m.centerX = m.centerX[:0]
	m.drive = m.drive[:0]
	m.message = "time reset"
}

func (m *Model) stopRecording() {
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.message = "gif: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
}

func (m *Model) saveImage() {
	if err := export.SaveImage(m.opts.ImagePath, export.SpinImage(m.spins, max(1, m.opts.ImageScale))); err != nil {
		m.message = "image: " + err.Error()
		return
	}
	m.message = "saved " + m.opts.ImagePath
}

func (m *Model) saveCanvas() {
	svg := export.BrailleToSVG(m.canvas.Grid, 4)
	if err := os.WriteFile(m.opts.SVGPath, []byte(svg), 0644); err != nil {
		m.message = "svg: " + err.Error()
		return
	}
	m.message = "saved " + m.opts.SVGPath
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.view3D {
		m.draw3D()
	} else {
		m.draw2D()
	}
}

// latticeScale returns dots per lattice unit for a square fit.
func (m *Model) latticeScale() float64 {
	n := m.spins.Size()
	if n == 0 {
		return 1
	}
	return math.Min(float64(m.canvas.DotWidth()), float64(m.canvas.DotHeight())) / float64(n)
}

func (m *Model) draw2D() {
	n := m.spins.Size()
	if n == 0 {
		return
	}
	s := m.latticeScale()
	step := m.opts.ArrowStep
	arrowLen := float64(step) * s * 0.9

	for y := step / 2; y < n; y += step {
		for x := step / 2; x < n; x += step {
			sx, sy, sz := m.spins.At(x, y)
			px, py := (float64(x)+0.5)*s, (float64(y)+0.5)*s
			if math.Hypot(sx, sy) < 0.2 {
				if sz > 0 {
					m.canvas.Set(int(px), int(py))
				}
				continue
			}
			dx, dy := sx*arrowLen/2, sy*arrowLen/2
			m.canvas.DrawArrow(px-dx, py-dy, px+dx, py+dy, math.Max(1.5, arrowLen*0.3))
		}
	}

	traj := m.dyn.Trajectory
	for i := 1; i < len(traj); i++ {
		a, b := traj[i-1], traj[i]
		m.canvas.DrawLine(int(a.X*s), int(a.Y*s), int(b.X*s), int(b.Y*s))
	}
	m.canvas.DrawCircle(m.dyn.Center.X*s, m.dyn.Center.Y*s, m.field.CoreRadius()*s)
}

func (m *Model) draw3D() {
	n := m.spins.Size()
	if n == 0 {
		return
	}
	half := math.Max(1, float64(n-1)/2)
	step := m.opts.ArrowStep + 1
	SpinWireframe(m.wire, m.spins, step, 0.6*float64(step)/half)
	m.wire.AddAxes(0.4)
	Render3D(m.canvas, m.wire, m.camera)
}

func themeColor(c lipgloss.Color) color.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return color.White
	}
	return col
}

// View renders the canvas next to the stats panel.
func (m Model) View() string {
	st := newStyles(CurrentTheme)
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(GradientText(strings.ToUpper(m.opts.Label), CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + st.recording.Render(fmt.Sprintf("REC %d", m.recorder.Len()))
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", m.dyn.Time))
	row("Center", fmt.Sprintf("(%.2f, %.2f)", m.dyn.Center.X, m.dyn.Center.Y))
	row("Velocity", fmt.Sprintf("(%.2f, %.2f)", m.dyn.Velocity.X, m.dyn.Velocity.Y))
	row("Rotation", fmt.Sprintf("%.3f", m.dyn.RotationFreq))
	row("Drive", fmt.Sprintf("%+.3f", m.field.LastDrive()))

	s.WriteString("\n" + st.active.Render("FIELD") + "\n")
	p := m.ctrl.Snapshot()
	row("Strength", fmt.Sprintf("%s %.2f", ProgressBar(p.Strength/efield.MaxStrength, 10), p.Strength))
	row("Frequency", fmt.Sprintf("%s %.1f", ProgressBar(p.Freq/efield.MaxFreq, 10), p.Freq))
	row("Amplitude", fmt.Sprintf("%s %.1f", ProgressBar(p.Amp/efield.MaxAmp, 10), p.Amp))
	row("Direction", m.ctrl.Direction().String())
	row("Pulse", string(m.ctrl.PulseType()))

	if len(m.centerX) > 1 {
		chart := asciigraph.Plot(m.centerX, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("center x"))
		s.WriteString(st.graph.Render(chart) + "\n")
		s.WriteString(st.label.Render("drive") + Sparkline(m.drive, 30) + "\n")
	}

	if m.message != "" {
		s.WriteString("\n" + st.value.Render(m.message) + "\n")
	}

	s.WriteString(st.help.Render("←→ strength  ↑↓ freq  +- amp\nd dir  p pulse  r reset  v 3d\nspace pause  g gif  t theme  ? help  q quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space      pause / resume
  ← →        field strength ∓ 0.05
  ↑ ↓        pulse frequency ± 0.1
  + -        pulse amplitude ± 0.1
  d / p      cycle direction / pulse type
  r          reset pulse clock
  v          toggle 3D view (x/X z/Z rotate, [ ] zoom)
  g          start / stop GIF recording
  s / c      save spin image / canvas svg
  t          cycle theme
  q          quit
`

// Run starts a full-screen live session.
func Run(ctrl *efield.Controller, field *skyrmion.Field, opts Options) error {
	_, err := tea.NewProgram(NewModel(ctrl, field, opts), tea.WithAltScreen()).Run()
	return err
}
