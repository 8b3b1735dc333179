package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dohr-michael/todo/internal/tasks"
)

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// snapshot is shared between model copies and refreshed by the store's
// change listener.
type snapshot struct {
	list []tasks.Task
}

// Model is the root bubbletea model for the task list.
type Model struct {
	store  *tasks.Store
	snap   *snapshot
	filter tasks.Filter
	focus  focus
	cursor int
	width  int
	height int

	input textinput.Model
	edit  textinput.Model

	lastErr error
}

// New creates the root model over store and subscribes to its changes.
func New(store *tasks.Store) Model {
	snap := &snapshot{list: store.Tasks()}
	store.OnChange(func(c tasks.Change) { snap.list = c.Tasks })

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 512
	input.Focus()

	edit := textinput.New()
	edit.Prompt = "✎ "
	edit.CharLimit = 512

	return Model{
		store:  store,
		snap:   snap,
		filter: tasks.FilterAll,
		focus:  focusInput,
		input:  input,
		edit:   edit,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusEdit:
			return m.handleEditKey(msg)
		case focusList:
			return m.handleListKey(msg)
		default:
			return m.handleInputKey(msg)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusEdit:
		m.edit, cmd = m.edit.Update(msg)
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		_, err := m.store.Add(m.input.Value())
		switch {
		case errors.Is(err, tasks.ErrBlankText):
			// Nothing to add; keep whatever whitespace was typed.
		case err != nil:
			m.lastErr = err
		default:
			m.lastErr = nil
			m.input.SetValue("")
		}
		m.clampCursor()
		return m, nil

	case "tab":
		m.setFilter(m.filter.Next())
		return m, nil

	case "down", "esc":
		return m.focusOnList(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.setFilter(m.filter.Next())
	case "1":
		m.setFilter(tasks.FilterAll)
	case "2":
		m.setFilter(tasks.FilterActive)
	case "3":
		m.setFilter(tasks.FilterCompleted)

	case "up", "k":
		if m.cursor == 0 {
			cmd := m.focusOnInput()
			return m, cmd
		}
		m.cursor--
	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case "a", "i", "/":
		cmd := m.focusOnInput()
		return m, cmd

	case "space", " ", "x":
		if t, ok := m.selected(); ok {
			m.report(m.store.Toggle(t.ID))
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.report(m.store.Remove(t.ID))
		}
	case "C":
		_, err := m.store.ClearCompleted()
		m.report(err)
	case "e":
		if t, ok := m.selected(); ok {
			return m.beginEdit(t.ID)
		}
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		err := m.store.SaveEdit(m.edit.Value())
		if _, open := m.store.Editing(); open {
			// Rejected or not persisted; keep the text for another try.
			if !errors.Is(err, tasks.ErrBlankText) {
				m.report(err)
			}
			return m, nil
		}
		m.report(err)
		m.edit.Blur()
		m.edit.SetValue("")
		m.focus = focusList
		m.clampCursor()
		return m, nil

	case "esc":
		m.store.CancelEdit()
		m.edit.Blur()
		m.edit.SetValue("")
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m Model) beginEdit(id string) (tea.Model, tea.Cmd) {
	sess, err := m.store.BeginEdit(id)
	if err != nil {
		m.report(err)
		return m, nil
	}
	m.focus = focusEdit
	m.edit.SetValue(sess.Scratch)
	m.edit.CursorEnd()
	cmd := m.edit.Focus()
	return m, cmd
}

func (m Model) focusOnList() Model {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
	return m
}

func (m *Model) focusOnInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) setFilter(f tasks.Filter) {
	m.filter = f
	m.cursor = 0
}

func (m *Model) report(err error) {
	m.lastErr = err
}

// rows is the filtered view the cursor indexes into.
func (m Model) rows() []tasks.Task {
	var out []tasks.Task
	for _, t := range m.snap.list {
		if m.filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) selected() (tasks.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return tasks.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the full TUI layout.
func (m Model) View() tea.View {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("todo"))
	b.WriteString("  ")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help()))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(tasks.Filters))
	for i, f := range tasks.Filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.filter {
			parts = append(parts, ActiveFilterStyle.Render(label))
		} else {
			parts = append(parts, FilterStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderRows() string {
	rows := m.rows()
	if len(rows) == 0 {
		return MutedStyle.Render("  no tasks") + "\n"
	}

	editing, isEditing := m.store.Editing()
	var b strings.Builder
	for i, t := range rows {
		marker := "  "
		if m.focus != focusInput && i == m.cursor {
			marker = CursorStyle.Render("› ")
		}

		if isEditing && m.focus == focusEdit && t.ID == editing.TaskID {
			b.WriteString(marker + m.edit.View() + "\n")
			continue
		}

		box := "[ ]"
		style := ActiveTaskStyle
		if t.Completed {
			box = "[x]"
			style = CompletedTaskStyle
		} else if m.focus == focusList && i == m.cursor {
			style = SelectedTaskStyle
		}
		b.WriteString(marker + MutedStyle.Render(box) + " " + style.Render(t.Text) + "\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	var active, completed int
	for _, t := range m.snap.list {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	status := fmt.Sprintf("%d tasks · %d active · %d completed", active+completed, active, completed)
	bar := StatusBarStyle.Render(status)
	if m.lastErr != nil {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", ErrorStyle.Render(m.lastErr.Error()))
	}
	return bar
}

func (m Model) help() string {
	switch m.focus {
	case focusEdit:
		return "enter save · esc cancel"
	case focusList:
		return "space toggle · e edit · d delete · C clear done · tab/1-3 filter · a add · q quit"
	default:
		return "enter add · tab filter · ↓ list · ctrl+c quit"
	}
}
