// Package ui provides the Bubble Tea front end for roster.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/controller"
	"github.com/rosterhq/roster/internal/prefs"
)

// view represents the current active view.
type view int

const (
	viewList view = iota
	viewForm
	viewConfirm
)

const (
	fieldName = iota
	fieldEmail
	fieldCount
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	ThemeName  string
	PrefsPath  string

	// ConfirmDelete asks before deleting; from prefs.
	ConfirmDelete bool
}

// snapshotMsg delivers the controller state after a dispatched operation
// has run to completion.
type snapshotMsg controller.Snapshot

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx           context.Context
	ctrl          *controller.Controller
	prefsPath     string
	confirmDelete bool

	theme Theme
	keys  keyMap

	snap controller.Snapshot

	currentView view
	selected    int
	confirmID   int64
	confirmName string

	inputs   [fieldCount]textinput.Model
	focusIdx int

	spin       spinner.Model
	inflight   bool
	submitting bool

	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		ctrl:          opts.Controller,
		prefsPath:     prefsPath,
		confirmDelete: opts.ConfirmDelete,
		theme:         GetTheme(opts.ThemeName),
		keys:          defaultKeyMap(),
		currentView:   viewList,
		spin:          sp,
	}
	m.inputs[fieldName] = name
	m.inputs[fieldEmail] = email
	if opts.Controller != nil {
		m.snap = opts.Controller.Snapshot()
	}
	return m
}

// Init implements tea.Model. The first load is dispatched immediately.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.ctrl != nil {
		cmds = append(cmds, m.dispatch(controller.Load{})...)
	}
	return tea.Batch(cmds...)
}

// dispatch runs a network command on a worker goroutine and returns the
// final snapshot as a message. The spinner tick rides along.
func (m *Model) dispatch(cmd controller.Command) []tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	m.inflight = true
	return []tea.Cmd{
		func() tea.Msg {
			ctrl.Dispatch(ctx, cmd)
			return snapshotMsg(ctrl.Snapshot())
		},
		m.spin.Tick,
	}
}

// applySync runs a non-network command inline and refreshes the snapshot.
// It reports whether the controller accepted the command.
func (m *Model) applySync(cmd controller.Command) bool {
	ok := m.ctrl.Dispatch(m.ctx, cmd)
	m.snap = m.ctrl.Snapshot()
	return ok
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case snapshotMsg:
		m.snap = controller.Snapshot(msg)
		m.inflight = false
		m.clampSelection()
		if m.submitting {
			m.submitting = false
			if m.snap.Err == "" {
				// Saved; back to the list with a blank form.
				m.resetForm()
				m.currentView = viewList
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.inflight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// Quit works everywhere, even mid-operation.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case viewForm:
		return m.handleFormKey(msg)
	case viewConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		_ = prefs.Save(m.prefsPath, prefs.Prefs{
			Theme:         m.theme.Name,
			ConfirmDelete: m.confirmDelete,
		})
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.applySync(controller.DismissError{})
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.snap.Users)-1 {
			m.selected++
		}
		return m, nil
	}

	// Everything below starts or prepares an operation; refuse while one
	// is in flight. The controller would refuse too, this just keeps the
	// UI honest.
	if m.inflight {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.dispatch(controller.Load{})...)

	case key.Matches(msg, m.keys.Add):
		m.applySync(controller.CancelEdit{})
		m.resetForm()
		m.currentView = viewForm
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if u, ok := m.selectedUser(); ok {
			if m.applySync(controller.StartEdit{ID: u.ID}) {
				m.seedFormFromDraft()
				m.currentView = viewForm
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if u, ok := m.selectedUser(); ok {
			if m.confirmDelete {
				m.confirmID = u.ID
				m.confirmName = u.Name
				m.currentView = viewConfirm
				return m, nil
			}
			return m, tea.Batch(m.dispatch(controller.Delete{ID: u.ID})...)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inflight {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.applySync(controller.CancelEdit{})
		m.resetForm()
		m.currentView = viewList
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.syncDraft()
		m.submitting = true
		return m, tea.Batch(m.dispatch(controller.Submit{})...)

	case key.Matches(msg, m.keys.NextField):
		m.focusField((m.focusIdx + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.focusField((m.focusIdx + fieldCount - 1) % fieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	m.syncDraft()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirmID
		m.confirmID = 0
		m.confirmName = ""
		m.currentView = viewList
		return m, tea.Batch(m.dispatch(controller.Delete{ID: id})...)

	case key.Matches(msg, m.keys.No):
		m.confirmID = 0
		m.confirmName = ""
		m.currentView = viewList
		return m, nil
	}
	return m, nil
}

// syncDraft pushes the form fields into the controller's draft.
func (m *Model) syncDraft() {
	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	m.applySync(controller.SetDraft{Name: &name, Email: &email})
}

// seedFormFromDraft copies the controller's draft into the inputs, used
// when entering edit mode.
func (m *Model) seedFormFromDraft() {
	m.inputs[fieldName].SetValue(m.snap.Draft.Name)
	m.inputs[fieldEmail].SetValue(m.snap.Draft.Email)
	m.focusField(fieldName)
}

func (m *Model) resetForm() {
	m.inputs[fieldName].SetValue("")
	m.inputs[fieldEmail].SetValue("")
	m.focusField(fieldName)
}

func (m *Model) focusField(idx int) {
	m.focusIdx = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.snap.Users) {
		m.selected = len(m.snap.Users) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedUser() (u struct {
	ID   int64
	Name string
}, ok bool) {
	if m.selected < 0 || m.selected >= len(m.snap.Users) {
		return u, false
	}
	sel := m.snap.Users[m.selected]
	u.ID = sel.ID
	u.Name = sel.Name
	return u, true
}

// Run wires up the Bubble Tea program and blocks until the user quits or
// the context is cancelled.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
