package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	canvasWidth  = 80
	canvasHeight = 20
	graphHeight  = 7
	seriesCap    = 600
)

// Stat is one label/value row in the side panel.
type Stat struct {
	Label string
	Value string
}

// Source drives a live view: it advances the underlying experiment by
// one display frame and draws the current state.
type Source interface {
	// Title labels the view.
	Title() string
	// Advance moves the experiment forward by one frame; it returns
	// false once the experiment is finished.
	Advance() bool
	// Draw renders the current state into the frame window.
	Draw(f *Frame)
	// Window returns the world window to draw in.
	Window() (xMin, xMax, yMin, yMax float64)
	// Stats returns the side-panel rows for the current state.
	Stats() []Stat
	// Series returns a scalar trace to chart below the canvas, or nil.
	Series() []float64
	// Reset restarts the experiment from its initial state.
	Reset()
}

type TickMsg time.Time

// Model animates a Source in the terminal.
type Model struct {
	src     Source
	canvas  *Canvas
	running bool
	done    bool
	frames  int
}

func NewModel(src Source) Model {
	return Model{
		src:     src,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.src.Reset()
			m.done = false
			m.running = true
			m.frames = 0
		}

	case TickMsg:
		if m.running && !m.done {
			if !m.src.Advance() {
				m.done = true
				m.running = false
			}
			m.frames++
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	xMin, xMax, yMin, yMax := m.src.Window()
	m.src.Draw(NewFrame(m.canvas, xMin, xMax, yMin, yMax))

	status := StatusRunning.Render("● running")
	switch {
	case m.done:
		status = StatusPaused.Render("■ finished")
	case !m.running:
		status = StatusPaused.Render("▮▮ paused")
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(m.src.Title()) + "\n")
	stats.WriteString(status + "\n\n")
	for _, s := range m.src.Stats() {
		stats.WriteString(labelStyle.Render(s.Label) + valueStyle.Render(s.Value) + "\n")
	}
	stats.WriteString(fmt.Sprintf("\n%sframe %d", labelStyle.Render(""), m.frames))

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)

	if series := m.src.Series(); len(series) > 1 {
		if len(series) > seriesCap {
			series = series[len(series)-seriesCap:]
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(graphHeight),
			asciigraph.Width(canvasWidth))
		main += "\n" + graphStyle.Render(graph)
	}

	return main + "\n" + helpStyle.Render("space pause · r reset · q quit")
}
