package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/session"
)

// footerHeight is the number of lines reserved for the prompt line and help bar.
const footerHeight = 2

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the address book browser.
// All book changes go through the Session from inside Update.
type Model struct {
	sess *session.Session

	mode   Mode
	focus  Focus
	width  int
	height int

	contacts    []*contact.Record
	cursor      int
	phoneCursor int

	input     textinput.Model
	inputKind inputKind
	confirm   confirmState

	status    string
	statusErr bool

	keys    browseKeys
	inKeys  inputKeys
	cfmKeys confirmKeys
	help    help.Model
}

// NewModel creates a browser over s in browse mode with left-pane focus.
func NewModel(s *session.Session) Model {
	ti := textinput.New()
	ti.CharLimit = 128

	m := Model{
		sess:    s,
		mode:    ModeBrowse,
		focus:   PaneLeft,
		input:   ti,
		keys:    BrowseKeyMap(),
		inKeys:  InputKeyMap(),
		cfmKeys: ConfirmKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleBrowseKey(msg)
		}
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		if m.focus == PaneLeft && m.selected() != nil {
			m.focus = PaneRight
		} else {
			m.focus = PaneLeft
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m.startInput(inputAddContact)

	case key.Matches(msg, m.keys.AddPhone):
		if m.selected() == nil {
			return m.fail("Select a contact first")
		}
		return m.startInput(inputAddPhone)

	case key.Matches(msg, m.keys.Edit):
		if m.selectedPhone() == "" {
			return m.fail("Select a phone in the right pane first")
		}
		return m.startInput(inputEditPhone)

	case key.Matches(msg, m.keys.Find):
		if m.selected() == nil {
			return m.fail("Select a contact first")
		}
		return m.startInput(inputFindPhone)

	case key.Matches(msg, m.keys.Delete):
		rec := m.selected()
		if rec == nil {
			return m, nil
		}
		m.confirm = confirmState{contact: rec.Name().Value()}
		if m.focus == PaneRight {
			phone := m.selectedPhone()
			if phone == "" {
				return m.fail("No phone selected")
			}
			m.confirm.phone = phone
		}
		m.mode = ModeConfirm
		return m, nil
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.inKeys.Cancel):
		m.endInput()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.inKeys.Submit):
		value := strings.TrimSpace(m.input.Value())
		kind := m.inputKind
		m.endInput()
		return m.submit(kind, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.cfmKeys.Yes):
		target := m.confirm
		m.mode = ModeBrowse
		m.confirm = confirmState{}
		if target.phone != "" {
			if err := m.sess.RemovePhone(target.contact, target.phone); err != nil {
				return m.fail(err.Error())
			}
			m.refresh()
			return m.succeed(fmt.Sprintf("Removed %s from %s", target.phone, target.contact))
		}
		if err := m.sess.DeleteContact(target.contact); err != nil {
			return m.fail(err.Error())
		}
		m.refresh()
		if m.selected() == nil {
			m.focus = PaneLeft
		}
		return m.succeed("Deleted " + target.contact)

	case key.Matches(msg, m.cfmKeys.No):
		m.mode = ModeBrowse
		m.confirm = confirmState{}
		m.status = ""
	}
	return m, nil
}

// submit applies a completed prompt line to the session.
func (m Model) submit(kind inputKind, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case inputAddContact:
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return m.fail("Usage: name [phone ...]")
		}
		rec, err := m.sess.AddContact(fields[0], fields[1:]...)
		if err != nil {
			return m.fail(err.Error())
		}
		m.refresh()
		m.selectContact(rec.Name().Value())
		return m.succeed("Saved " + rec.Name().Value())

	case inputAddPhone:
		name := m.selected().Name().Value()
		if err := m.sess.AddPhone(name, value); err != nil {
			return m.fail(err.Error())
		}
		m.refresh()
		m.phoneCursor = len(m.selected().Phones()) - 1
		return m.succeed(fmt.Sprintf("Added %s to %s", value, name))

	case inputEditPhone:
		name := m.selected().Name().Value()
		old := m.selectedPhone()
		if err := m.sess.ChangePhone(name, old, value); err != nil {
			return m.fail(err.Error())
		}
		m.refresh()
		return m.succeed(fmt.Sprintf("Changed %s to %s", old, value))

	case inputFindPhone:
		name := m.selected().Name().Value()
		p, err := m.sess.FindPhone(name, value)
		if err != nil {
			return m.fail(err.Error())
		}
		for i, ph := range m.selected().Phones() {
			if ph.Value() == p.Value() {
				m.phoneCursor = i
			}
		}
		m.focus = PaneRight
		return m.succeed(fmt.Sprintf("%s: %s", name, p))
	}
	return m, nil
}

func (m Model) startInput(kind inputKind) (tea.Model, tea.Cmd) {
	m.mode = ModeInput
	m.inputKind = kind
	m.input.Reset()
	m.input.Prompt = kind.prompt()
	m.input.Placeholder = kind.placeholder()
	m.status = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = ModeBrowse
	m.input.Blur()
	m.input.Reset()
}

func (m Model) fail(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = true
	return m, nil
}

func (m Model) succeed(text string) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = false
	return m, nil
}

// refresh reloads the contact snapshot and clamps both cursors.
func (m *Model) refresh() {
	m.contacts = m.sess.Contacts()
	if m.cursor >= len(m.contacts) {
		m.cursor = len(m.contacts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampPhoneCursor()
}

func (m *Model) clampPhoneCursor() {
	n := 0
	if rec := m.selected(); rec != nil {
		n = len(rec.Phones())
	}
	if m.phoneCursor >= n {
		m.phoneCursor = n - 1
	}
	if m.phoneCursor < 0 {
		m.phoneCursor = 0
	}
}

// move shifts the cursor of the focused pane by delta, wrapping at the ends.
func (m *Model) move(delta int) {
	if m.focus == PaneRight {
		rec := m.selected()
		if rec == nil {
			return
		}
		if n := len(rec.Phones()); n > 0 {
			m.phoneCursor = (m.phoneCursor + delta + n) % n
		}
		return
	}
	if n := len(m.contacts); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
		m.phoneCursor = 0
	}
}

func (m *Model) selectContact(name string) {
	for i, rec := range m.contacts {
		if rec.Name().Value() == name {
			m.cursor = i
			m.phoneCursor = 0
			return
		}
	}
}

// selected returns the record under the contact cursor, or nil if the book is empty.
func (m Model) selected() *contact.Record {
	if m.cursor < 0 || m.cursor >= len(m.contacts) {
		return nil
	}
	return m.contacts[m.cursor]
}

// selectedPhone returns the phone under the phone cursor when the right pane
// has focus, or "" otherwise.
func (m Model) selectedPhone() string {
	if m.focus != PaneRight {
		return ""
	}
	rec := m.selected()
	if rec == nil {
		return ""
	}
	phones := rec.Phones()
	if m.phoneCursor < 0 || m.phoneCursor >= len(phones) {
		return ""
	}
	return phones[m.phoneCursor].Value()
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the footer.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - footerHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout, prompt line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(m.viewContacts()),
		rightStyle.Render(m.viewPhones()),
	)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewFooter(), helpView)
}

// viewContacts renders the contact list.
func (m Model) viewContacts() string {
	if len(m.contacts) == 0 {
		return mutedText.Render("No contacts, press a to add one")
	}

	var b strings.Builder
	for i, rec := range m.contacts {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(rec.Name().Value())
		b.WriteString(mutedText.Render(fmt.Sprintf(" (%d)", len(rec.Phones()))))
	}
	return b.String()
}

// viewPhones renders the phones of the selected contact.
func (m Model) viewPhones() string {
	rec := m.selected()
	if rec == nil {
		return mutedText.Render("Select a contact")
	}

	var b strings.Builder
	b.WriteString(titleText.Render(rec.Name().Value()))
	b.WriteString("\n")

	phones := rec.Phones()
	if len(phones) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedText.Render("No phones, press p to add one"))
		return b.String()
	}
	for i, p := range phones {
		b.WriteByte('\n')
		if m.focus == PaneRight && i == m.phoneCursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(p.Value())
	}
	return b.String()
}

// viewFooter renders the prompt line, confirmation question or status.
func (m Model) viewFooter() string {
	switch m.mode {
	case ModeInput:
		return m.input.View()
	case ModeConfirm:
		return m.confirm.View()
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorText.Render(m.status)
	}
	return okText.Render(m.status)
}
