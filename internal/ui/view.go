package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/controller"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	st := m.theme.Styles()

	if m.showHelp {
		return m.renderHelp(st)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(st))
	b.WriteString("\n\n")

	switch m.currentView {
	case viewForm:
		b.WriteString(m.renderForm(st))
	case viewConfirm:
		b.WriteString(m.renderConfirm(st))
	default:
		b.WriteString(m.renderList(st))
	}

	if m.snap.Err != "" {
		b.WriteString("\n")
		b.WriteString(st.Danger.Render("✗ " + m.snap.Err))
		b.WriteString(st.Muted.Render("  (x to dismiss)"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter(st))
	return b.String()
}

func (m Model) renderHeader(st Styles) string {
	title := st.Title.Render("Roster")
	if !m.snap.Busy {
		return title
	}
	label := m.snap.Op.String()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		title, "  ",
		st.Accent.Render(m.spin.View()+" "+label+"..."),
	)
}

func (m Model) renderList(st Styles) string {
	if len(m.snap.Users) == 0 {
		if m.snap.LastLoaded.IsZero() {
			return st.Muted.Render("  No data yet. Press r to reload.")
		}
		return st.Muted.Render("  No users. Press a to add one.")
	}

	var b strings.Builder
	for i, u := range m.snap.Users {
		line := userLine(u)
		if i == m.selected {
			b.WriteString(st.Selected.Render("▸ " + line))
		} else {
			b.WriteString(st.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf("  %d user(s)", len(m.snap.Users))))
	return b.String()
}

func (m Model) renderForm(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Accent.Render(formTitle(m.snap)))
	b.WriteString("\n\n")

	for i := range m.inputs {
		field := m.inputs[i].View()
		if i == m.focusIdx {
			b.WriteString(st.Focused.Render(field))
		} else {
			b.WriteString(st.Panel.Render(field))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.Muted.Render("enter save · tab next field · esc cancel"))
	return b.String()
}

func (m Model) renderConfirm(st Styles) string {
	prompt := fmt.Sprintf("Delete %q?", m.confirmName)
	body := st.Danger.Render(prompt) + "\n\n" +
		st.Muted.Render("y confirm · n cancel")
	return st.Panel.Render(body)
}

func (m Model) renderFooter(st Styles) string {
	hints := []string{
		"a add", "e edit", "d delete", "r reload",
		"T theme", "? help", "q quit",
	}
	return st.Help.Render(strings.Join(hints, " · "))
}

func (m Model) renderHelp(st Styles) string {
	rows := [][2]string{
		{"↑/k, ↓/j", "move selection"},
		{"a", "add a user"},
		{"e, enter", "edit the selected user"},
		{"d", "delete the selected user"},
		{"r", "reload from the server"},
		{"x", "dismiss the error message"},
		{"T", "cycle color theme"},
		{"esc", "cancel form / go back"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n",
			st.Accent.Render(r[0]), st.Text.Render(r[1])))
	}
	b.WriteString("\n")
	b.WriteString(st.Muted.Render("press any key to close"))
	return st.Panel.Render(b.String())
}

// userLine formats one row of the user list.
func userLine(u api.User) string {
	return fmt.Sprintf("%-4d %-24s %s", u.ID, u.Name, u.Email)
}

// formTitle names the form after what submitting it will do.
func formTitle(s controller.Snapshot) string {
	if s.Editing() {
		return fmt.Sprintf("Edit user #%d", *s.EditTarget)
	}
	return "New user"
}
