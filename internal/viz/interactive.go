package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/skyrmsim/internal/config"
	"github.com/san-kum/skyrmsim/internal/efield"
	"github.com/san-kum/skyrmsim/internal/skyrmion"
)

var presetInfo = map[string]string{
	"rest":         "no field, static texture",
	"sin-drive":    "sinusoidal push along x",
	"square-drive": "square pulses along y",
	"dc-bias":      "constant offset along -x",
	"diagonal":     "sin drive along xy+",
	"small-core":   "tight core, fast pulse",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// pickerParam is one editable numeric setting on the config screen.
type pickerParam struct {
	name string
	step float64
	get  func(c *config.Config) float64
	set  func(c *config.Config, v float64)
}

var pickerParams = []pickerParam{
	{"grid_size", 10, func(c *config.Config) float64 { return float64(c.GridSize) }, func(c *config.Config, v float64) { c.GridSize = max(8, int(v)) }},
	{"core_radius", 0.5, func(c *config.Config) float64 { return c.CoreRadius }, func(c *config.Config, v float64) { c.CoreRadius = max(0.5, v) }},
	{"dmi", 0.1, func(c *config.Config) float64 { return c.DMI }, func(c *config.Config, v float64) { c.DMI = v }},
	{"strength", efield.StrengthStep, func(c *config.Config) float64 { return c.Field.Strength }, func(c *config.Config, v float64) { c.Field.Strength = v }},
	{"pulse_freq", efield.FreqStep, func(c *config.Config) float64 { return c.Field.PulseFreq }, func(c *config.Config, v float64) { c.Field.PulseFreq = v }},
	{"pulse_amp", efield.AmpStep, func(c *config.Config) float64 { return c.Field.PulseAmp }, func(c *config.Config, v float64) { c.Field.PulseAmp = v }},
}

// picker chooses a preset, lets the user tweak it, then hands over to a
// live Model.
type picker struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	opts          Options
	liveModel     Model
}

func NewInteractiveApp(opts Options) *picker {
	return &picker{
		state:   stateMenu,
		presets: config.ListPresets(),
		opts:    opts,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m picker) handleKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m picker) configKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	param := pickerParams[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				param.set(m.cfg, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(pickerParams)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(param.get(m.cfg), 'f', -1, 64)
	case "left", "h":
		param.set(m.cfg, param.get(m.cfg)-param.step)
	case "right", "l":
		param.set(m.cfg, param.get(m.cfg)+param.step)
	case "d":
		m.cfg.Field.Direction = nextName(efield.DirectionNames(), m.cfg.Field.Direction)
	case "p":
		m.cfg.Field.PulseType = nextName(efield.PulseTypeNames(), m.cfg.Field.PulseType)
	case "s":
		return m.start()
	}
	return m, nil
}

func nextName(names []string, cur string) string {
	for i, n := range names {
		if n == cur {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (m picker) start() (picker, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	field, err := skyrmion.New(m.cfg.SkyrmionConfig())
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	opts := m.opts
	opts.Label = m.selected
	opts.ImageScale = m.cfg.Scale
	m.liveModel = NewModel(m.cfg.NewController(), field, opts)
	m.state = stateSim
	return m, m.liveModel.Init()
}

func (m picker) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

var (
	pickCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	pickDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickDimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	pickKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	pickTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pickSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(pickKey.Render(pairs[i]) + pickDim.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render("SKYRMSIM") + "\n    " + pickSubtle.Render("electric-field driven néel skyrmion") + "\n    " + pickSubtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-14s", name)), pickValue.UnsetBold().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", pickDim.Render(fmt.Sprintf("  %-14s", name)), pickDimmer.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m picker) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + pickTitle.Render(strings.ToUpper(m.selected)) + "\n    " + pickSubtle.Render(presetInfo[m.selected]) + "\n    " + pickSubtle.Render("─────────────────────────") + "\n\n")
	for i, p := range pickerParams {
		valStr := fmt.Sprintf("%8.3f", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pickCursor.Render("▸"), pickActive.Render(fmt.Sprintf("%-12s", p.name)), pickValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", pickDim.Render(fmt.Sprintf("  %-12s", p.name)), pickDimmer.Render(valStr)))
		}
	}
	b.WriteString(fmt.Sprintf("\n      %s %s\n      %s %s\n",
		pickDim.Render(fmt.Sprintf("%-12s", "direction")), pickValue.Render(m.cfg.Field.Direction),
		pickDim.Render(fmt.Sprintf("%-12s", "pulse_type")), pickValue.Render(m.cfg.Field.PulseType)))
	if m.err != "" {
		b.WriteString("\n    " + pickWarning.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "d/p", "dir/pulse", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset picker.
func RunInteractive(opts Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(opts), tea.WithAltScreen()).Run()
	return err
}
