package viz

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orrery/internal/canvas"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	panelWidth = 30
	minSpeed   = 1.0 / 64
	maxSpeed   = 1024.0
)

type TickMsg time.Time

// Model adapts a scene.Scene to the Bubble Tea update cycle.
type Model struct {
	scene    *scene.Scene
	theme    Theme
	running  bool
	showHelp bool
	last     time.Time
	interval time.Duration
	log      *log.Logger
}

// NewModel wraps s; the scene's FPS sets the tick rate.
func NewModel(s *scene.Scene, themeName string) Model {
	fps := s.Options().FPS
	if fps <= 0 {
		fps = 30
	}
	return Model{
		scene:    s,
		theme:    GetTheme(themeName),
		running:  true,
		interval: time.Second / time.Duration(fps),
		log:      log.New(io.Discard, "", 0),
	}
}

// WithLogger sends diagnostics to l instead of discarding them.
func (m Model) WithLogger(l *log.Logger) Model {
	m.log = l
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "enter":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.scene.SetSpeed(math.Min(m.scene.Speed()*2, maxSpeed))
		case "-", "_":
			m.scene.SetSpeed(math.Max(m.scene.Speed()/2, minSpeed))
		case "r":
			m.scene.Reset()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == m.theme.Name {
					m.theme = GetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		// on failure the previous grid stays in place
		w, h := msg.Width-panelWidth-2, msg.Height-1
		if w <= 0 || h <= 0 {
			m.log.Printf("window %dx%d too small, keeping %dx%d", msg.Width, msg.Height, m.scene.Width(), m.scene.Height())
			break
		}
		if err := m.scene.Resize(w, h); err != nil {
			m.log.Printf("resize %dx%d: %v", w, h, err)
		}
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.last.IsZero() {
			m.scene.Step(now.Sub(m.last).Seconds())
		}
		m.last = now
		return m, m.tick()
	}
	return m, nil
}

// View renders the orrery next to the legend panel.
func (m Model) View() string {
	view := lipgloss.JoinHorizontal(lipgloss.Top, m.renderCanvas(m.scene.Frame()), m.renderPanel())
	if m.showHelp {
		return m.renderHelp() + "\n" + view
	}
	return view
}

// renderCanvas styles runs of same-colored cells together.
func (m Model) renderCanvas(c *canvas.Canvas) string {
	var b strings.Builder
	cells := c.Cells()
	width := c.Width()
	for row := 0; row < c.Height(); row++ {
		line := cells[row*width : (row+1)*width]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && line[i].Color == line[start].Color {
				continue
			}
			var run strings.Builder
			for _, cell := range line[start:i] {
				run.WriteRune(cell.Glyph)
			}
			if line[start].Color == orrery.Reset {
				b.WriteString(run.String())
			} else {
				b.WriteString(m.theme.Style(line[start].Color).Render(run.String()))
			}
			start = i
		}
		if row < c.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderPanel() string {
	header := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)

	var s strings.Builder
	s.WriteString(header.Render("ORRERY") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(label.Render(status) + "\n\n")
	s.WriteString(label.Render(fmt.Sprintf("%-8s", "time")) + value.Render(fmt.Sprintf("%.1f", m.scene.Animator().Elapsed())) + "\n")
	s.WriteString(label.Render(fmt.Sprintf("%-8s", "speed")) + value.Render(fmt.Sprintf("%.3gx", m.scene.Speed())) + "\n")
	s.WriteString(label.Render(fmt.Sprintf("%-8s", "theme")) + value.Render(m.theme.Name) + "\n\n")

	for _, o := range m.scene.Animator().Orbiters() {
		glyph := m.theme.Style(o.Body.Color).Render(string(o.Body.Glyph))
		deg := o.Angle * 180 / math.Pi
		s.WriteString(fmt.Sprintf("%s %-8s %s\n", glyph, o.Body.Name, label.Render(fmt.Sprintf("%5.1f°", deg))))
	}

	s.WriteString(label.Render("\nSP:Pause R:Reset Q:Quit\n+/-:Speed T:Theme ?:Help"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Width(panelWidth)
	return panel.Render(s.String())
}

func (m Model) renderHelp() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 2)
	return box.Render(strings.Join([]string{
		"Space  pause/resume",
		"+ / -  double/halve speed",
		"R      reset to phase",
		"T      cycle theme",
		"?      toggle help",
		"Q      quit",
	}, "\n"))
}

// Running reports whether the animation is advancing.
func (m Model) Running() bool { return m.running }

// ThemeName is the active theme.
func (m Model) ThemeName() string { return m.theme.Name }
