// Package tui renders the Directory Client in the terminal. All state
// changes go through directory.Update; network calls run as tea.Cmds that
// return directory events.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohits-web03/robofriends/internal/directory"
	"github.com/rohits-web03/robofriends/internal/models"
)

const fieldCount = 5

var fieldLabels = [fieldCount]string{
	"first name",
	"last name",
	"username",
	"email",
	"phone",
}

var fieldOrder = [fieldCount]directory.Field{
	directory.FieldFirstName,
	directory.FieldLastName,
	directory.FieldUsername,
	directory.FieldEmail,
	directory.FieldPhone,
}

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	api    directory.API
	state  directory.State
	search textinput.Model
	inputs [fieldCount]textinput.Model
	focus  int

	// pending is the candidate whose phone is being checked. Create is
	// called with exactly this record.
	pending models.NewRobot
}

func New(ctx context.Context, api directory.API) Model {
	search := textinput.New()
	search.Placeholder = "Search Robot Friend"
	search.Prompt = "/ "
	search.CharLimit = 64
	search.Width = 40
	search.Focus()

	m := Model{ctx: ctx, api: api, search: search}
	m.inputs = newInputs()
	return m
}

func newInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}
	return inputs
}

// State exposes the current view state.
func (m Model) State() directory.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return directory.LoadStarted{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case directory.Event:
		return m.apply(msg)
	}
	return m, nil
}

// apply feeds an event through directory.Update and schedules the next
// network step, if any.
func (m Model) apply(e directory.Event) (Model, tea.Cmd) {
	prev := m.state
	m.state = directory.Update(m.state, e)

	switch e := e.(type) {
	case directory.LoadStarted:
		return m, m.listCmd()
	case directory.SubmitClicked:
		if !prev.Submitting && m.state.Submitting {
			m.pending = m.state.Form.Candidate()
			return m, m.checkPhoneCmd(m.pending.Phone)
		}
	case directory.PhoneChecked:
		if prev.Submitting && !e.Exists {
			return m, m.createCmd(m.pending)
		}
	case directory.Created, directory.FormClosed:
		m.inputs = newInputs()
		m.focus = 0
	}
	if !m.state.Submitting {
		m.pending = models.NewRobot{}
	}
	return m, nil
}

func (m Model) listCmd() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		robots, err := api.List(ctx)
		if err != nil {
			return directory.LoadFailed{Err: err}
		}
		return directory.Loaded{Robots: robots}
	}
}

func (m Model) checkPhoneCmd(phone string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		exists, err := api.CheckPhone(ctx, phone)
		if err != nil {
			return directory.SubmitFailed{Err: err}
		}
		return directory.PhoneChecked{Exists: exists}
	}
}

func (m Model) createCmd(in models.NewRobot) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		robot, err := api.Create(ctx, in)
		if err != nil {
			return directory.SubmitFailed{Err: err}
		}
		return directory.Created{Robot: robot}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyQuit) {
		return m, tea.Quit
	}

	// a prompt blocks everything until dismissed
	if m.state.Prompt != "" {
		if key.Matches(msg, keyEnter, keyBack) {
			return m.apply(directory.PromptDismissed{})
		}
		return m, nil
	}

	if m.state.ModalOpen {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyBack):
		return m, tea.Quit
	case key.Matches(msg, keyAdd):
		m.search.Blur()
		m.inputs[m.focus].Focus()
		return m.apply(directory.FormOpened{})
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Search {
		m.state = directory.Update(m.state, directory.SearchChanged{Text: m.search.Value()})
	}
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the form is frozen until the in-flight submit settles
	if m.state.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyBack):
		m.search.Focus()
		return m.apply(directory.FormClosed{})

	case key.Matches(msg, keyNext):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case key.Matches(msg, keyPrev):
		m.inputs[m.focus].Blur()
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case key.Matches(msg, keyStyle):
		return m.apply(directory.StyleSelected{Style: nextStyle(m.state.Form.Style)})

	case key.Matches(msg, keyGenerate):
		return m.apply(directory.GenerateClicked{})

	case key.Matches(msg, keyEnter):
		return m.apply(directory.SubmitClicked{})
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.state = directory.Update(m.state, directory.FieldChanged{
		Field: fieldOrder[m.focus],
		Value: m.inputs[m.focus].Value(),
	})
	return m, cmd
}

// nextStyle cycles through models.Styles, starting from the first.
func nextStyle(cur models.Style) models.Style {
	for i, s := range models.Styles {
		if s == cur {
			return models.Styles[(i+1)%len(models.Styles)]
		}
	}
	return models.Styles[0]
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("RoboFriends") + "\n\n")

	if m.state.ModalOpen {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	// always reserve a line for the prompt to prevent layout shift
	if m.state.Prompt != "" {
		b.WriteString("  " + alertStyle.Render(m.state.Prompt) + "  " + mutedStyle.Render("[enter]") + "\n")
	} else {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString("  " + m.search.View() + "\n\n")

	switch {
	case m.state.Loading:
		b.WriteString("  " + mutedStyle.Render("loading robots...") + "\n")
	case m.state.LoadErr != "":
		b.WriteString("  " + alertStyle.Render("could not load robots: "+m.state.LoadErr) + "\n")
	}

	visible := m.state.Visible()
	if !m.state.Loading && len(visible) == 0 {
		b.WriteString("  " + mutedStyle.Render("no robots") + "\n")
	}
	for _, r := range visible {
		b.WriteString(fmt.Sprintf("    %-24s %-30s %s\n", truncate(r.Name, 24), truncate(r.Email, 30), mutedStyle.Render(r.StyleType)))
	}

	b.WriteString("\n  " + mutedStyle.Render(fmt.Sprintf("%d of %d  ctrl+n add  esc quit", len(visible), len(m.state.Robots))) + "\n")
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("add new user") + "\n\n")

	for i := range fieldCount {
		label := mutedStyle.Render(fmt.Sprintf("  %-12s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = activeStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View()))
	}

	style := string(m.state.Form.Style)
	if style == "" {
		style = "-- select style --"
	}
	b.WriteString(fmt.Sprintf("    %s %s\n", mutedStyle.Render(fmt.Sprintf("  %-12s", "style")), style))

	if m.state.Form.Image != "" {
		b.WriteString("\n    " + mutedStyle.Render(m.state.Form.Image) + "\n")
	}

	b.WriteString("\n")
	if m.state.Submitting {
		b.WriteString("  " + activeStyle.Render("Adding...") + "\n")
	} else {
		b.WriteString("\n")
	}

	help := "tab next  ctrl+s style  ctrl+g generate  enter add  esc close"
	b.WriteString("  " + mutedStyle.Render(help) + "\n")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// Run starts the TUI on the terminal.
func Run(ctx context.Context, api directory.API) error {
	_, err := tea.NewProgram(New(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
