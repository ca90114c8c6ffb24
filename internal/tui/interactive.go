package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pidlab/internal/config"
	"github.com/san-kum/pidlab/internal/metrics"
	"github.com/san-kum/pidlab/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type screen int

const (
	screenConfig screen = iota
	screenSim
)

type model struct {
	screen screen
	cfg    *config.Config

	paramNames []string
	cursor     int
	editing    bool
	editBuf    string
	errMsg     string

	loop  *sim.Loop
	speed float64

	width  int
	height int
}

// New builds the interactive tuner around cfg. The caller keeps
// ownership of cfg until a run starts; each run snapshots it.
func New(cfg *config.Config) tea.Model {
	m := model{
		cfg:    cfg,
		loop:   sim.NewLoop(),
		speed:  1.0,
		width:  80,
		height: 24,
	}
	m.setParamsForModel()
	return m
}

// Run starts the interactive terminal tuner.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenSim {
			return m, nil
		}
		if m.loop.Status() == sim.Running {
			m.advance()
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

// advance steps the loop enough times to cover one display frame at the
// current speed multiplier.
func (m *model) advance() {
	dt := m.cfg.Dt
	steps := int(m.speed * 0.016 / dt)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if m.loop.Time() >= m.cfg.Duration {
			m.loop.Pause()
			return
		}
		if err := m.loop.Step(); err != nil {
			m.errMsg = err.Error()
			return
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenConfig:
		return m.configKey(msg)
	case screenSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.setParam(m.paramNames[m.cursor], val)
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
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
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.paramNames)-1 {
			m.cursor++
		}
	case "enter":
		m.editing = true
		m.editBuf = fmt.Sprintf("%g", m.getParam(m.paramNames[m.cursor]))
	case "left", "h":
		name := m.paramNames[m.cursor]
		m.setParam(name, m.getParam(name)-paramStep(name))
	case "right", "l":
		name := m.paramNames[m.cursor]
		m.setParam(name, m.getParam(name)+paramStep(name))
	case "m":
		m.toggleModel()
	case "s", " ":
		m.errMsg = ""
		m.loop.Reset()
		if err := m.loop.Start(m.cfg); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.screen = screenSim
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "c":
		m.loop.Reset()
		m.screen = screenConfig
		return m, tea.ClearScreen
	case " ", "p":
		switch m.loop.Status() {
		case sim.Running:
			m.loop.Pause()
		case sim.Paused:
			m.loop.Resume()
			return m, tick()
		}
	case "r":
		m.loop.Reset()
		if err := m.loop.Start(m.cfg); err != nil {
			m.errMsg = err.Error()
			m.screen = screenConfig
			return m, tea.ClearScreen
		}
		return m, tea.Batch(tea.ClearScreen, tick())
	case "+", "=":
		m.speed = math.Min(m.speed*2, 16)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	case "left", "h", "right", "l", "up", "k", "down", "j":
		m.tuneGain(msg.String())
	}
	return m, nil
}

// tuneGain adjusts the selected gain live, on both the config snapshot
// and the running controller.
func (m *model) tuneGain(key string) {
	gains := []string{"kp", "ki", "kd"}
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return
	case "down", "j":
		if m.cursor < len(gains)-1 {
			m.cursor++
		}
		return
	}

	if m.cursor >= len(gains) {
		return
	}
	name := gains[m.cursor]
	delta := paramStep(name)
	if key == "left" || key == "h" {
		delta = -delta
	}
	val := m.getParam(name) + delta
	m.setParam(name, val)
	if pid := m.loop.Controller(); pid != nil {
		pid.SetParam(name, val)
	}
}

func (m *model) setParamsForModel() {
	common := []string{"kp", "ki", "kd", "setpoint"}
	switch m.cfg.ProcessModel {
	case config.ModelSecondOrder:
		m.paramNames = append(common, "natural_frequency", "damping_ratio", "disturbance", "noise_std_dev", "dt", "duration")
	default:
		m.paramNames = append(common, "time_constant", "disturbance", "noise_std_dev", "dt", "duration")
	}
	if m.cursor >= len(m.paramNames) {
		m.cursor = 0
	}
}

func (m *model) toggleModel() {
	if m.cfg.ProcessModel == config.ModelFirstOrder {
		m.cfg.ProcessModel = config.ModelSecondOrder
		if m.cfg.NaturalFrequency == 0 {
			m.cfg.NaturalFrequency = 2.0
			m.cfg.DampingRatio = 1.0
		}
	} else {
		m.cfg.ProcessModel = config.ModelFirstOrder
		if m.cfg.TimeConstant == 0 {
			m.cfg.TimeConstant = config.DefaultTau
		}
	}
	m.setParamsForModel()
}

func (m *model) getParam(name string) float64 {
	switch name {
	case "kp":
		return m.cfg.Kp
	case "ki":
		return m.cfg.Ki
	case "kd":
		return m.cfg.Kd
	case "setpoint":
		return m.cfg.Setpoint
	case "time_constant":
		return m.cfg.TimeConstant
	case "natural_frequency":
		return m.cfg.NaturalFrequency
	case "damping_ratio":
		return m.cfg.DampingRatio
	case "disturbance":
		return m.cfg.Disturbance
	case "noise_std_dev":
		return m.cfg.NoiseStdDev
	case "dt":
		return m.cfg.Dt
	case "duration":
		return m.cfg.Duration
	}
	return 0
}

func (m *model) setParam(name string, val float64) {
	switch name {
	case "kp":
		m.cfg.Kp = val
	case "ki":
		m.cfg.Ki = val
	case "kd":
		m.cfg.Kd = val
	case "setpoint":
		m.cfg.Setpoint = val
	case "time_constant":
		m.cfg.TimeConstant = val
	case "natural_frequency":
		m.cfg.NaturalFrequency = val
	case "damping_ratio":
		m.cfg.DampingRatio = val
	case "disturbance":
		m.cfg.Disturbance = val
	case "noise_std_dev":
		m.cfg.NoiseStdDev = math.Max(0, val)
	case "dt":
		m.cfg.Dt = math.Max(1e-4, val)
	case "duration":
		m.cfg.Duration = math.Max(0.1, val)
	}
}

func paramStep(name string) float64 {
	switch name {
	case "kp", "kd":
		return 0.01
	case "ki":
		return 0.001
	case "setpoint":
		return 10
	case "dt":
		return 0.001
	case "duration":
		return 1
	case "noise_std_dev":
		return 0.05
	default:
		return 0.1
	}
}

func (m model) View() string {
	switch m.screen {
	case screenConfig:
		return m.viewConfig()
	case screenSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("p i d l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")
	b.WriteString("      " + dim.Render("model ") + white.Render(m.cfg.ProcessModel) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%10.3f", m.getParam(name))
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString("      " + red.Render(m.errMsg) + "\n\n")
	}
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  m model  s start  q quit") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.loop.Status() == sim.Paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.cfg.ProcessModel), statusText,
		dim.Render(fmt.Sprintf("x%.2g", m.speed))))

	progress := m.loop.Time() / m.cfg.Duration
	if progress > 1 {
		progress = 1
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	timeStr := fmt.Sprintf("%.1fs/%.0fs", m.loop.Time(), m.cfg.Duration)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(timeStr)))

	trace := m.loop.Trace()
	if len(trace) > 1 {
		b.WriteString(m.plot(trace))
		b.WriteString("\n")
	} else {
		b.WriteString(dim.Render("   waiting for samples...") + "\n")
	}

	pid := m.loop.Controller()
	if pid != nil {
		gains := pid.GetParams()
		names := []string{"kp", "ki", "kd"}
		b.WriteString("\n   ")
		for i, name := range names {
			label := fmt.Sprintf("%s=%.3f", name, gains[name])
			if i == m.cursor {
				b.WriteString(magenta.Render(label) + "  ")
			} else {
				b.WriteString(dim.Render(label) + "  ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.metricsLine(trace))
	if m.errMsg != "" {
		b.WriteString("   " + red.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + dim.Render("   space pause  r restart  ←→ tune gain  +- speed  c config  q quit") + "\n")

	return b.String()
}

func (m model) plot(trace []sim.Sample) string {
	width := m.width - 14
	if width < 40 {
		width = 40
	}
	height := m.height - 14
	if height < 6 {
		height = 6
	}

	outputs := make([]float64, 0, width)
	stride := len(trace) / width
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(trace); i += stride {
		outputs = append(outputs, trace[i].Output)
	}

	chart := asciigraph.Plot(outputs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("output vs setpoint %.1f", m.cfg.Setpoint)))

	var b strings.Builder
	for _, line := range strings.Split(chart, "\n") {
		b.WriteString("   " + line + "\n")
	}
	return b.String()
}

func (m model) metricsLine(trace []sim.Sample) string {
	r := metrics.Compute(trace)

	fmtMetric := func(v float64, unit string, defined bool) string {
		if !defined {
			return "n/a"
		}
		return fmt.Sprintf("%.2f%s", v, unit)
	}

	return fmt.Sprintf("   %s %s   %s %s   %s %s   %s %s\n",
		dim.Render("rise"), white.Render(fmtMetric(r.RiseTime, "s", r.RiseTimeDefined())),
		dim.Render("settle"), white.Render(fmtMetric(r.SettlingTime, "s", r.SettlingTimeDefined())),
		dim.Render("overshoot"), white.Render(fmtMetric(r.OvershootPct, "%", !math.IsNaN(r.OvershootPct))),
		dim.Render("sse"), white.Render(fmtMetric(r.SteadyStateError, "", !math.IsNaN(r.SteadyStateError))))
}
