package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/logging"
)

var sceneInfo = map[string]string{
	"ballistic":    "projectiles under gravity",
	"central":      "orbits around a center",
	"mirrors":      "one particle, one mirror",
	"sandbox":      "free particles on a torus",
	"kaleidoscope": "rays in a mirror diamond",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// tunables are the scene fields editable before a run.
var tunables = []string{"dt", "rays", "max_points", "particles", "workers"}

type menu struct {
	state, cursor int
	scenes        []string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	live          Model
	logger        *slog.Logger
}

// NewMenu returns the scene picker. From a scene's config page s starts
// the live view.
func NewMenu(logger *slog.Logger) tea.Model {
	return menu{
		state:  stateMenu,
		scenes: config.ListPresets(),
		logger: logging.OrNop(logger),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.scenes[m.cursor])
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.set(tunables[m.paramCursor], v)
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

	name := tunables[m.paramCursor]
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, formatParam(m.get(name))
	case "left", "h":
		m.nudge(name, -1)
	case "right", "l":
		m.nudge(name, 1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m *menu) get(name string) float64 {
	switch name {
	case "dt":
		return m.cfg.Dt
	case "rays":
		return float64(m.cfg.Rays.Count)
	case "max_points":
		return float64(m.cfg.Rays.MaxPoints)
	case "particles":
		return float64(m.cfg.Random.Count)
	case "workers":
		return float64(m.cfg.Rays.Workers)
	}
	return 0
}

func (m *menu) set(name string, v float64) {
	switch name {
	case "dt":
		m.cfg.Dt = v
	case "rays":
		m.cfg.Rays.Count = int(v)
	case "max_points":
		m.cfg.Rays.MaxPoints = int(v)
	case "particles":
		m.cfg.Random.Count = int(v)
	case "workers":
		m.cfg.Rays.Workers = int(v)
	}
}

// nudge steps dt by a millisecond and counts by one.
func (m *menu) nudge(name string, dir float64) {
	step := 1.0
	if name == "dt" {
		step = 0.001
	}
	m.set(name, m.get(name)+dir*step)
}

func formatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (m menu) start() (menu, tea.Cmd) {
	w, err := m.cfg.BuildWorld(m.logger)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.live = NewModel(w, m.cfg.Dt, m.cfg.Name, m.logger)
	m.state = stateSim
	return m, m.live.Init()
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m menu) viewMenu() string {
	st := newStyles(CurrentTheme)
	var b strings.Builder
	b.WriteString("\n\n    " + st.header.UnsetMarginBottom().Render("RAYSIM") + "\n    " + st.muted.Render("particles, forces and mirrors") + "\n    " + st.muted.Render("─────────────────────────") + "\n\n")
	for i, name := range m.scenes {
		desc := sceneInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.active.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-14s", name)), st.warning.UnsetBold().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", st.muted.Render(fmt.Sprintf("  %-14s", name)), st.muted.Render(desc)))
		}
	}
	b.WriteString("\n    " + st.hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	st := newStyles(CurrentTheme)
	var b strings.Builder
	b.WriteString("\n\n    " + st.header.UnsetMarginBottom().Render(strings.ToUpper(m.cfg.Name)) + "\n    " + st.muted.Render(sceneInfo[m.cfg.Name]) + "\n    " + st.muted.Render("─────────────────────────") + "\n\n")
	for i, name := range tunables {
		val := fmt.Sprintf("%8s", formatParam(m.get(name)))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", st.active.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-12s", name)), st.warning.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", st.muted.Render(fmt.Sprintf("  %-12s", name)), st.muted.Render(val)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + st.warning.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + st.hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the scene picker in the alternate screen.
func RunInteractive(logger *slog.Logger) error {
	_, err := tea.NewProgram(NewMenu(logger), tea.WithAltScreen()).Run()
	return err
}
