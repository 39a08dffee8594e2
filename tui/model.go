package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fret-focus/debug"
	"fret-focus/game"
	"fret-focus/midi"
	"fret-focus/notation"
	"fret-focus/theme"
	"fret-focus/widgets"
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	boardTop int
}

// Options wires optional collaborators into the model
type Options struct {
	DeviceMgr  *midi.DeviceManager // nil: no hardware
	Mirror     *midi.Mirror        // nil: no LED output
	OnSettings func(game.Settings) // called after every update (autosave)
	Staff      notation.Renderer   // defaults to notation.TextStaff
	Names      notation.Renderer   // defaults to notation.Letters
}

type Model struct {
	Engine *game.Engine
	State  game.State
	Theme  *theme.Theme

	opts     Options
	cursor   game.Position
	page     int // octave-mode Launchpad page
	quitting bool
	bounds   *layoutBounds

	launchpad    midi.Controller // may be nil
	pads         midi.PadSource  // launchpad input, may be nil
	guitar       midi.Controller // may be nil
	notes        midi.NoteSource // guitar input, may be nil
	guitarOffset int
}

type DeviceEventMsg midi.DeviceEvent

// PadMsg is a Launchpad press
type PadMsg midi.PadEvent

// NoteMsg is a note from a MIDI guitar
type NoteMsg midi.NoteEvent

func NewModel(engine *game.Engine, state game.State, th *theme.Theme, opts Options) Model {
	if opts.Staff == nil {
		opts.Staff = notation.TextStaff{LineColor: th.Muted()}
	}
	if opts.Names == nil {
		opts.Names = notation.Letters{}
	}
	m := Model{
		Engine: engine,
		State:  state,
		Theme:  th,
		opts:   opts,
		cursor: game.Position{String: 0, Fret: state.Round.Anchor},
		bounds: &layoutBounds{},
	}
	m.sync()
	return m
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func ListenForPads(c midi.PadSource) tea.Cmd {
	return func() tea.Msg {
		pad, ok := <-c.PadEvents()
		if !ok {
			return nil
		}
		return PadMsg(pad)
	}
}

func ListenForNotes(c midi.NoteSource) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-c.NoteEvents()
		if !ok {
			return nil
		}
		return NoteMsg(note)
	}
}

func (m Model) Init() tea.Cmd {
	if m.opts.DeviceMgr == nil {
		return nil
	}
	return ListenForDevices(m.opts.DeviceMgr)
}

// apply runs one reducer step and pushes the result to the outputs
func (m *Model) apply(a game.Action) {
	m.State = m.Engine.Reduce(m.State, a)
	m.sync()
}

func (m *Model) sync() {
	// Keep the cursor on a playable cell after the window moves
	if w := m.State.Window(); !w.Contains(m.cursor.Fret) {
		m.cursor.Fret = m.State.Round.Anchor
		if m.State.Round.Mode == game.ModeOctave {
			m.cursor.Fret = w.Start
		}
	}
	if m.State.Round.Mode == game.ModePosition {
		m.page = 0
	}
	if m.opts.Mirror != nil {
		m.opts.Mirror.Show(midi.Frame(m.State, midi.ViewFor(m.State, m.page), m.Theme))
	}
	if m.opts.OnSettings != nil {
		m.opts.OnSettings(m.State.Settings)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "left", "h":
			m.cursor.Fret = max(m.cursor.Fret-1, 0)
		case "right", "l":
			m.cursor.Fret = min(m.cursor.Fret+1, game.MaxFret)
		case "up", "k":
			m.cursor.String = max(m.cursor.String-1, 0)
		case "down", "j":
			m.cursor.String = min(m.cursor.String+1, game.NumStrings-1)

		case " ":
			m.apply(game.Toggle{Pos: m.cursor})
		case "enter":
			m.apply(m.advance())
		case "n":
			m.apply(game.NextRound{})
		case "m":
			m.apply(game.ToggleMode{})
		case "+", "=":
			m.apply(game.AdjustCount{Delta: 1})
		case "-", "_":
			m.apply(game.AdjustCount{Delta: -1})
		case "s":
			m.apply(game.ToggleStaff{})
		case "x":
			m.apply(game.ToggleHidden{})
		case "a":
			m.apply(game.CycleAccidentals{})
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if p, ok := widgets.FretboardHit(msg.X, msg.Y-m.bounds.boardTop); ok {
			m.cursor = p
			m.apply(game.Toggle{Pos: p})
		}

	case PadMsg:
		m.handlePad(msg)
		if m.pads == nil {
			return m, nil
		}
		return m, ListenForPads(m.pads)

	case NoteMsg:
		if p, ok := midi.GuitarPosition(midi.NoteEvent(msg), m.guitarOffset, m.State.Settings.Tuning); ok {
			m.cursor = p
			m.apply(game.Toggle{Pos: p})
		}
		if m.notes == nil {
			return m, nil
		}
		return m, ListenForNotes(m.notes)

	case DeviceEventMsg:
		return m, tea.Batch(m.handleDevice(midi.DeviceEvent(msg)), ListenForDevices(m.opts.DeviceMgr))
	}

	return m, nil
}

// advance is the action behind enter and the Launchpad scene button
func (m Model) advance() game.Action {
	if m.State.Phase == game.Guessing {
		return game.Submit{}
	}
	return game.NextRound{}
}

func (m *Model) handlePad(pad PadMsg) {
	switch {
	case pad.Col == midi.SceneCol && pad.Row == midi.ActionRow:
		m.apply(m.advance())
	case pad.Row == midi.TopRow && pad.Col == midi.PageLeftCol:
		m.page = 0
		m.sync()
	case pad.Row == midi.TopRow && pad.Col == midi.PageRightCol:
		if m.State.Round.Mode == game.ModeOctave {
			m.page = 1
		}
		m.sync()
	default:
		if p, ok := midi.ViewFor(m.State, m.page).Position(pad.Row, pad.Col); ok {
			m.cursor = p
			m.apply(game.Toggle{Pos: p})
		}
	}
}

func (m *Model) handleDevice(event midi.DeviceEvent) tea.Cmd {
	switch event.Type {
	case midi.DeviceConnected:
		debug.Log("tui", "controller connected: %s", event.ID)
		switch c := event.Controller.(type) {
		case midi.PadSource:
			m.launchpad, m.pads = event.Controller, c
			if m.opts.Mirror != nil {
				m.opts.Mirror.SetController(event.Controller)
			}
			m.sync()
			return ListenForPads(c)
		case midi.NoteSource:
			m.guitar, m.notes = event.Controller, c
			m.guitarOffset = m.opts.DeviceMgr.FirstChannel(event.ID)
			return ListenForNotes(c)
		}

	case midi.DeviceDisconnected:
		debug.Log("tui", "controller disconnected: %s", event.ID)
		if m.launchpad != nil && m.launchpad.ID() == event.ID {
			m.launchpad, m.pads = nil, nil
			if m.opts.Mirror != nil {
				m.opts.Mirror.SetController(nil)
			}
		}
		if m.guitar != nil && m.guitar.ID() == event.ID {
			m.guitar, m.notes = nil, nil
		}
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.State
	th := m.Theme

	// Styles
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.FG())
	badgeStyle := lipgloss.NewStyle().Foreground(th.BG()).Background(th.Muted()).Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	streakStyle := dimStyle
	if s.Streak > 0 {
		streakStyle = lipgloss.NewStyle().Foreground(th.Success()).Bold(true)
	}

	modeLabel := "POSITION MODE"
	if s.Round.Mode == game.ModeOctave {
		modeLabel = "OCTAVE MODE"
	}

	var devices []string
	if m.launchpad != nil {
		devices = append(devices, "LP")
	}
	if m.guitar != nil {
		devices = append(devices, "GTR")
	}
	deviceStatus := ""
	if len(devices) > 0 {
		deviceStatus = "  " + dimStyle.Render(strings.Join(devices, " "))
	}

	header := fmt.Sprintf("%s  %s  %s  %s%s",
		titleStyle.Render("FRETBOARD FOCUS"),
		badgeStyle.Render(modeLabel),
		dimStyle.Render(fmt.Sprintf("targets:%d  %s", s.Settings.Count, s.Settings.Accidentals)),
		streakStyle.Render(fmt.Sprintf("streak:%d", s.Streak)),
		deviceStatus,
	)

	// Targets
	colors := make([]lipgloss.Color, len(s.Round.Targets))
	for i := range s.Round.Targets {
		colors[i] = th.Target(s.Round.ColorIndex(i))
	}
	renderer := m.opts.Names
	if s.Settings.Staff {
		renderer = m.opts.Staff
	}
	targets := dimStyle.Render("FIND ALL") + "\n" +
		renderer.Render(s.Round.Targets, colors, s.Round.Mode, s.Round.UseFlats)

	board := widgets.RenderFretboard(s, widgets.Cursor{Pos: m.cursor, Show: s.Phase == game.Guessing}, th)

	var status string
	switch {
	case s.Phase == game.Guessing && s.Round.Mode == game.ModePosition:
		status = "Locate all target notes within the bright window."
	case s.Phase == game.Guessing:
		status = "Locate all target notes."
	case s.Result != nil && s.Result.Correct:
		status = lipgloss.NewStyle().Foreground(th.Success()).Render("Correct!") + "  Round complete."
	case s.Result != nil:
		status = fmt.Sprintf("Round complete. missed %d, wrong %d.", len(s.Result.Missed), len(s.Result.Extra))
	}

	help := dimStyle.Render(widgets.RenderKeyHelp(widgets.TrainerKeys))

	// Compute layout bounds (leading newline + header + gap + targets + gap)
	m.bounds.boardTop = 1 + lipgloss.Height(header) + 1 + lipgloss.Height(targets) + 1

	// Build output
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(targets)
	out.WriteString("\n\n")
	out.WriteString(board)
	out.WriteString("\n\n")
	out.WriteString(status)
	if s.Phase == game.Revealed {
		out.WriteString("\n")
		out.WriteString(widgets.RenderLegend(th))
	}
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}
