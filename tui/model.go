package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"motion-midi/motion"
	"motion-midi/sequencer"
	"motion-midi/theme"
	"motion-midi/widgets"
)

const meterWidth = 32

// Linker is a transport whose connection can be toggled by hand
type Linker interface {
	Connected() bool
	SetConnected(bool)
}

type Model struct {
	Seq     *sequencer.Sequencer
	Buttons *motion.Latch
	Link    Linker // nil unless the transport can be toggled
	Theme   *theme.Theme
	Name    string

	status   sequencer.Status
	quitting bool
}

type UpdateMsg struct{}

func NewModel(seq *sequencer.Sequencer, buttons *motion.Latch, th *theme.Theme, name string) Model {
	return Model{
		Seq:     seq,
		Buttons: buttons,
		Theme:   th,
		Name:    name,
		status:  seq.Status(),
	}
}

func ListenForUpdates(seq *sequencer.Sequencer) tea.Cmd {
	return func() tea.Msg {
		<-seq.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Seq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "f", "a", "1":
			m.Buttons.PressFront()

		case "s", "g", "2":
			m.Buttons.PressSide()

		case "c":
			if m.Link != nil {
				m.Link.SetConnected(!m.Link.Connected())
			}
		}

	case UpdateMsg:
		m.status = m.Seq.Status()
		return m, ListenForUpdates(m.Seq)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.status
	th := m.Theme

	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	fgStyle := lipgloss.NewStyle().Foreground(th.FG())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	errStyle := lipgloss.NewStyle().Foreground(th.Error())

	conn := "waiting"
	if st.Connected {
		conn = "connected"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(m.Name),
		"  ",
		widgets.RenderIndicator(th, conn, st.Connected),
		"  ",
		widgets.RenderIndicator(th, "sensor", st.SensorOK),
	)

	modes := []string{
		sequencer.ModeNone.String(),
		sequencer.ModeAccelerometer.String(),
		sequencer.ModeGyroscope.String(),
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderChoice(th, modes, int(st.Mode)))
	out.WriteString("\n\n")
	out.WriteString(fgStyle.Render(sequencer.StatusLine(st)))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderMeter(th, "note", st.Pair.Note, meterWidth))
	out.WriteString("\n")
	out.WriteString(widgets.RenderMeter(th, "velocity", st.Pair.Velocity, meterWidth))
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(fmt.Sprintf("accel   %s", st.Accel)))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(fmt.Sprintf("gyro    %s", st.Gyro)))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(fmt.Sprintf("window  %d  avg %.1f  max %.1f", st.WindowLen, st.Average, st.Max)))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render(fmt.Sprintf("cycles  %d  sent %d", st.Cycles, st.SampleCount)))

	if st.SendFailures > 0 || st.LastError != "" {
		out.WriteString("\n")
		out.WriteString(errStyle.Render(fmt.Sprintf("failures %d  %s", st.SendFailures, st.LastError)))
	}

	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(m.keyHelp())))

	return out.String()
}

func (m Model) keyHelp() []widgets.KeySection {
	keys := []widgets.KeyBinding{
		{Key: "f a 1", Desc: "front button (accel mode)"},
		{Key: "s g 2", Desc: "side button (gyro mode)"},
	}
	if m.Link != nil {
		keys = append(keys, widgets.KeyBinding{Key: "c", Desc: "toggle listener connection"})
	}
	keys = append(keys, widgets.KeyBinding{Key: "q", Desc: "quit"})
	return []widgets.KeySection{{Keys: keys}}
}
