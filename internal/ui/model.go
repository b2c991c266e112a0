package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/filter"
	"github.com/nibzard/todolist-go/internal/form"
	"github.com/nibzard/todolist-go/internal/tasks"
	"github.com/nibzard/todolist-go/internal/utils"
)

// focus is the component receiving key input.
type focus int

const (
	focusList focus = iota
	focusTitle
	focusDescription
	focusRowTitle
	focusRowDescription
)

// Model is the Bubble Tea model of the to-do list screen.
type Model struct {
	ctx    context.Context
	store  *tasks.Store
	form   *form.Controller
	list   *List
	logger *log.Logger

	mode   filter.Mode
	cursor int
	focus  focus

	titleInput textinput.Model
	descInput  textarea.Model
	rowTitle   textinput.Model
	rowDesc    textarea.Model
	editingID  string

	dirty     bool
	status    string
	statusErr bool
	showHelp  bool
	width     int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithFilter sets the initial filter mode.
func WithFilter(mode filter.Mode) ModelOption {
	return func(m *Model) {
		if mode.Valid() {
			m.mode = mode
		}
	}
}

// WithLogger sets the model logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFormController overrides the controller used for new tasks.
func WithFormController(c *form.Controller) ModelOption {
	return func(m *Model) {
		if c != nil {
			m.form = c
		}
	}
}

// NewModel returns a model showing store. The model subscribes to store
// changes and re-renders after each one.
func NewModel(ctx context.Context, store *tasks.Store, opts ...ModelOption) *Model {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.Prompt = "Title: "
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Details (optional)"
	desc.ShowLineNumbers = false
	desc.SetHeight(3)
	desc.SetWidth(60)

	rowTitle := textinput.New()
	rowTitle.Prompt = "  title: "
	rowDesc := textarea.New()
	rowDesc.Placeholder = "description"
	rowDesc.ShowLineNumbers = false
	rowDesc.SetHeight(3)
	rowDesc.SetWidth(60)

	m := &Model{
		ctx:        ctx,
		store:      store,
		form:       form.New(store),
		list:       NewList(store),
		logger:     log.New(io.Discard),
		mode:       filter.All,
		titleInput: title,
		descInput:  desc,
		rowTitle:   rowTitle,
		rowDesc:    rowDesc,
	}
	for _, opt := range opts {
		opt(m)
	}

	store.Subscribe(func(c tasks.Change) {
		m.dirty = true
		if c.Err != nil {
			m.setError(c.Err)
		}
	})
	m.refresh()
	return m
}

// List returns the rendered row list.
func (m *Model) List() *List {
	return m.list
}

// Mode returns the current filter mode.
func (m *Model) Mode() filter.Mode {
	return m.mode
}

// Cursor returns the index of the selected row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.descInput.SetWidth(msg.Width - 8)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusList:
			cmd = m.updateList(msg)
		case focusTitle, focusDescription:
			cmd = m.updateForm(msg)
		case focusRowTitle, focusRowDescription:
			cmd = m.updateRowEditor(msg)
		}
	}

	if m.dirty {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch msg.String() {
		case "q":
			return tea.Quit
		default:
			m.showHelp = false
		}
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?", "h":
		m.showHelp = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(m.list.Len()-1, 0)
	case " ", "space", "x":
		if row, ok := m.list.Row(m.cursor); ok {
			m.report(m.list.SetCompleted(m.ctx, row.TaskID, !row.Completed), completedMessage(row))
		}
	case "e", "enter":
		if row, ok := m.list.Row(m.cursor); ok {
			return m.toggleEdit(row)
		}
	case "d", "delete":
		if row, ok := m.list.Row(m.cursor); ok {
			if row.TaskID == m.editingID {
				m.editingID = ""
			}
			m.report(m.list.Delete(m.ctx, row.TaskID), fmt.Sprintf("Deleted %q", row.Title))
		}
	case "a", "n":
		return m.focusForm(focusTitle)
	case "f":
		m.setMode(m.mode.Next())
	case "1":
		m.setMode(filter.All)
	case "2":
		m.setMode(filter.Active)
	case "3":
		m.setMode(filter.Completed)
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.blurAll()
		m.focus = focusList
		return nil
	case "tab", "shift+tab":
		if m.focus == focusTitle {
			return m.focusForm(focusDescription)
		}
		return m.focusForm(focusTitle)
	case "ctrl+s":
		m.submit()
		return nil
	case "enter":
		if m.focus == focusTitle {
			m.submit()
			return nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return cmd
}

func (m *Model) updateRowEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		// The row stays in Editing until it is saved.
		m.blurAll()
		m.focus = focusList
		return nil
	case "tab", "shift+tab":
		if m.focus == focusRowTitle {
			m.focus = focusRowDescription
			m.rowTitle.Blur()
			return m.rowDesc.Focus()
		}
		m.focus = focusRowTitle
		m.rowDesc.Blur()
		return m.rowTitle.Focus()
	case "enter", "ctrl+s":
		// enter is a newline inside the description.
		if msg.String() == "enter" && m.focus == focusRowDescription {
			break
		}
		if row, ok := m.list.Row(m.list.IndexOf(m.editingID)); ok {
			return m.toggleEdit(row)
		}
		m.blurAll()
		m.focus = focusList
		return nil
	}

	var cmd tea.Cmd
	if m.focus == focusRowTitle {
		m.rowTitle, cmd = m.rowTitle.Update(msg)
		_ = m.list.SetTitle(m.editingID, m.rowTitle.Value())
	} else {
		m.rowDesc, cmd = m.rowDesc.Update(msg)
		_ = m.list.SetDescription(m.editingID, m.rowDesc.Value())
	}
	return cmd
}

// toggleEdit moves row between ReadOnly and Editing and focuses the row
// editor while it is being edited.
func (m *Model) toggleEdit(row Row) tea.Cmd {
	if row.State == ReadOnly && m.editingID != "" && m.editingID != row.TaskID {
		m.setError(errors.New("save the row being edited first"))
		return nil
	}

	err := m.list.ToggleEdit(m.ctx, row.TaskID)
	current, _ := m.list.Row(m.list.IndexOf(row.TaskID))
	if current.State == Editing {
		m.editingID = row.TaskID
		m.rowTitle.SetValue(current.Title)
		m.rowTitle.CursorEnd()
		m.rowDesc.SetValue(current.Description)
		m.rowDesc.Blur()
		m.focus = focusRowTitle
		if err != nil {
			m.setError(err)
		}
		return m.rowTitle.Focus()
	}

	m.editingID = ""
	m.blurAll()
	m.focus = focusList
	m.report(err, fmt.Sprintf("Saved %q", current.Title))
	return nil
}

func (m *Model) focusForm(f focus) tea.Cmd {
	m.blurAll()
	m.focus = f
	if f == focusDescription {
		return m.descInput.Focus()
	}
	return m.titleInput.Focus()
}

func (m *Model) blurAll() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.rowTitle.Blur()
	m.rowDesc.Blur()
}

func (m *Model) submit() {
	res, err := m.form.Submit(m.ctx, form.Fields{
		Title:       m.titleInput.Value(),
		Description: m.descInput.Value(),
	})
	if err != nil {
		m.setError(err)
		return
	}
	if res.ClearFields {
		m.titleInput.Reset()
		m.descInput.Reset()
	}
	if res.Created {
		m.setStatus(fmt.Sprintf("Added %q", res.Task.Title))
		m.logger.Info("task added", "id", res.Task.ID)
	}
}

// setMode switches the filter and re-renders. Unknown modes leave the
// current view untouched.
func (m *Model) setMode(mode filter.Mode) {
	if !mode.Valid() {
		return
	}
	m.mode = mode
	m.refresh()
}

func (m *Model) refresh() {
	m.dirty = false
	visible, ok := filter.Apply(m.store.List(), m.mode)
	if !ok {
		return
	}
	m.list.Render(visible)
	if m.editingID != "" && m.list.IndexOf(m.editingID) < 0 {
		m.editingID = ""
		if m.focus == focusRowTitle || m.focus == focusRowDescription {
			m.blurAll()
			m.focus = focusList
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.list.Len() {
		m.cursor = m.list.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(ok)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.logger.Warn("action failed", "error", err)
}

func completedMessage(row Row) string {
	if row.Completed {
		return fmt.Sprintf("Reopened %q", row.Title)
	}
	return fmt.Sprintf("Completed %q", row.Title)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("todolist") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(m.formView() + "\n")
	b.WriteString(filterView(m.mode) + "\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(footerText(m.focus)) + "\n")
	return b.String()
}

func (m *Model) formView() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("New task") + "\n")
	b.WriteString(m.titleInput.View() + "\n")
	b.WriteString(m.descInput.View())
	if m.focus == focusTitle || m.focus == focusDescription {
		return focusedPane.Render(b.String())
	}
	return blurredPane.Render(b.String())
}

func filterView(mode filter.Mode) string {
	parts := make([]string, 0, len(filter.Modes()))
	for i, md := range filter.Modes() {
		label := fmt.Sprintf("%d %s", i+1, md)
		if md == mode {
			parts = append(parts, activeFilter.Render(label))
		} else {
			parts = append(parts, inactiveFilter.Render(label))
		}
	}
	return "Filter: " + strings.Join(parts, "  ")
}

func (m *Model) listView() string {
	if m.list.Len() == 0 {
		if m.mode == filter.All {
			return descStyle.Render("  No tasks yet. Press a to add one.") + "\n"
		}
		return descStyle.Render(fmt.Sprintf("  No %s tasks.", m.mode)) + "\n"
	}

	var b strings.Builder
	for i, row := range m.list.Rows() {
		marker := "  "
		if i == m.cursor && m.focus == focusList {
			marker = cursorStyle.Render("> ")
		}

		title := row.Title
		if title == "" {
			title = "(untitled)"
		}
		switch {
		case row.State == Editing:
			title = editingStyle.Render(utils.Truncate(title, 60))
		case row.Completed:
			title = doneStyle.Render(utils.Truncate(title, 60))
		default:
			title = utils.Truncate(title, 60)
		}

		fmt.Fprintf(&b, "%s%s %s  %s %s\n",
			marker,
			checkbox(row.Completed),
			title,
			buttonStyle.Render("["+row.ButtonLabel()+"]"),
			deleteStyle.Render("[Delete]"),
		)

		if row.State == Editing && row.TaskID == m.editingID {
			b.WriteString("    " + m.rowTitle.View() + "\n")
			b.WriteString(indent(m.rowDesc.View(), "    ") + "\n")
			continue
		}
		if row.Description != "" {
			b.WriteString("      " + descStyle.Render(utils.Truncate(firstLine(row.Description), 70)) + "\n")
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func footerText(f focus) string {
	switch f {
	case focusTitle, focusDescription:
		return "enter (title) or ctrl+s: add | tab: switch field | esc: back to list"
	case focusRowTitle, focusRowDescription:
		return "enter (title) or ctrl+s: save | tab: switch field | esc: back to list (row stays in edit)"
	default:
		return "a: add | space: toggle | e: edit/save | d: delete | f: filter | ?: help | q: quit"
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j, k, arrows   Move selection\n")
	b.WriteString("  space, x       Toggle completed\n")
	b.WriteString("  e, enter       Edit row / save row\n")
	b.WriteString("  d, delete      Delete row\n")
	b.WriteString("  a, n           Focus the new task form\n")
	b.WriteString("  f              Cycle filter\n")
	b.WriteString("  1, 2, 3        Show all, active, completed\n")
	b.WriteString("  ?, h           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
	b.WriteString("In the form: enter adds from the title field, ctrl+s adds from\n")
	b.WriteString("either field, tab switches fields, esc returns to the list.\n\n")
	b.WriteString(helpStyle.Render("Press any key to close help") + "\n")
}
