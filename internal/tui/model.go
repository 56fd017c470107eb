package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/auth"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/chat"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/models"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/relay"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/speech"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/storage"
)

// RelaySender is the slice of the relay client the UI needs.
type RelaySender interface {
	Send(ctx context.Context, message string, history []models.HistoryMessage) (string, error)
}

// Messages fed back into the update loop.
type (
	responseMsg struct {
		text string
	}
	errMsg struct {
		message string
	}
	clearCopiedMsg struct{}
	clearNoticeMsg struct{}
	// transcriptMsg carries a settled voice-capture transcript back into the
	// update loop.
	transcriptMsg struct {
		text string
	}
	speechNoticeMsg struct {
		message string
	}
)

type screen int

const (
	screenAuth screen = iota
	screenChat
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmNewChat
	confirmDelete
	confirmLogout
)

// Model is the bubbletea model for the whole client: the auth screen first,
// then the chat screen.
type Model struct {
	store   *chat.Store
	session *auth.Session
	client  RelaySender
	speech  *speech.Controller
	kv      chat.KV

	screen screen

	// Auth screen
	authMode  authMode
	username  textinput.Model
	password  textinput.Model
	authField int
	authError string

	// Chat screen
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	ready    bool
	width    int
	height   int

	// selected indexes into the message list for copy/edit/delete/speak.
	// -1 targets the newest message.
	selected int

	confirm   confirmAction
	confirmID string

	copiedID string
	notice   string

	darkMode bool
	styles   styleSet
	renderer *glamour.TermRenderer
}

// New builds the client model. The dark-mode flag and any active session are
// restored from local storage.
func New(store *chat.Store, session *auth.Session, client RelaySender, speechCtl *speech.Controller, kv chat.KV) Model {
	user := textinput.New()
	user.Placeholder = "Username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points

	dark := true
	if v, ok := kv.Get(storage.KeyDarkMode); ok {
		dark = v == "true"
	}

	m := Model{
		store:    store,
		session:  session,
		client:   client,
		speech:   speechCtl,
		kv:       kv,
		username: user,
		password: pass,
		textarea: ta,
		spinner:  sp,
		selected: -1,
		darkMode: dark,
		styles:   newStyleSet(dark),
	}

	if session.LoggedIn() {
		m.screen = screenChat
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.rebuildRenderer()
		m.refreshViewport()
		return m, nil

	case responseMsg:
		m.store.ReceiveResponse(msg.text)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case errMsg:
		m.store.ReceiveError(msg.message)
		m.refreshViewport()
		return m, nil

	case clearCopiedMsg:
		m.copiedID = ""
		m.refreshViewport()
		return m, nil

	case clearNoticeMsg:
		m.notice = ""
		return m, nil

	case transcriptMsg:
		m.textarea.SetValue(msg.text)
		m.textarea.CursorEnd()
		return m, nil

	case speechNoticeMsg:
		m.notice = msg.message
		return m, clearNotice()

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.store.InFlight() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}

	if m.screen == screenAuth {
		return m.updateAuth(msg)
	}
	return m.updateChat(msg)
}

// ─── Auth screen ───

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab":
		m.authField = 1 - m.authField
		if m.authField == 0 {
			m.username.Focus()
			m.password.Blur()
		} else {
			m.username.Blur()
			m.password.Focus()
		}
		return m, nil

	case "ctrl+s":
		if m.authMode == authLogin {
			m.authMode = authRegister
		} else {
			m.authMode = authLogin
		}
		m.authError = ""
		return m, nil

	case "ctrl+g":
		m.session.LoginAsGuest()
		return m.enterChat(), nil

	case "enter":
		var err error
		if m.authMode == authLogin {
			err = m.session.Login(m.username.Value(), m.password.Value())
		} else {
			err = m.session.Register(m.username.Value(), m.password.Value())
		}
		if err != nil {
			m.authError = err.Error()
			return m, nil
		}
		return m.enterChat(), nil
	}

	var cmd tea.Cmd
	if m.authField == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) enterChat() Model {
	m.screen = screenChat
	m.authError = ""
	m.username.Reset()
	m.password.Reset()
	m.refreshViewport()
	return m
}

// ─── Chat screen ───

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.confirm != confirmNone {
		return m.updateConfirm(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.store.EditingID() != "" {
			m.store.CancelEdit()
			m.textarea.Reset()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	case "ctrl+up":
		m.moveSelection(-1)
		m.refreshViewport()
		return m, nil

	case "ctrl+down":
		m.moveSelection(1)
		m.refreshViewport()
		return m, nil

	case "ctrl+e":
		return m.beginEdit(), nil

	case "ctrl+y":
		return m.copySelected()

	case "ctrl+d":
		if target := m.selectedMessage(); target != nil {
			m.confirm = confirmDelete
			m.confirmID = target.ID
		}
		return m, nil

	case "ctrl+n":
		if m.store.Len() > 0 {
			m.confirm = confirmNewChat
		}
		return m, nil

	case "ctrl+l":
		m.confirm = confirmLogout
		return m, nil

	case "ctrl+t":
		return m.toggleDarkMode(), nil

	case "ctrl+r":
		return m, m.toggleRecording()

	case "ctrl+o":
		if target := m.selectedMessage(); target != nil && target.Sender == models.SenderAI {
			return m, m.toggleSpeak(target.ID, target.Text)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if !m.store.InFlight() {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// submitInput sends the typed text, saves an edit, or runs a slash command.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())

	if handled, model := m.runCommand(input); handled {
		return model, nil
	}

	pending, ok := m.store.SendMessage(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.selected = -1
	m.refreshViewport()
	m.viewport.GotoBottom()

	if pending == nil {
		// Edit saved in place; nothing goes over the wire.
		return m, nil
	}

	m.speech.StopAll()
	return m, tea.Batch(m.send(pending), m.spinner.Tick)
}

// runCommand handles /attach and /detach. Attachment staging is name-only;
// no file content is read.
func (m Model) runCommand(input string) (bool, Model) {
	switch {
	case strings.HasPrefix(input, "/attach "):
		name := strings.TrimSpace(strings.TrimPrefix(input, "/attach "))
		if name != "" {
			m.store.StageAttachment(name)
			m.textarea.Reset()
		}
		return true, m

	case strings.HasPrefix(input, "/detach "):
		name := strings.TrimSpace(strings.TrimPrefix(input, "/detach "))
		if name != "" {
			m.store.RemoveAttachment(name)
			m.textarea.Reset()
		}
		return true, m
	}
	return false, m
}

func (m Model) beginEdit() Model {
	target := m.selectedMessage()
	if target == nil {
		return m
	}
	text, ok := m.store.StartEdit(target.ID)
	if !ok {
		return m
	}
	m.textarea.SetValue(text)
	m.textarea.CursorEnd()
	return m
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	target := m.selectedMessage()
	if target == nil {
		return m, nil
	}
	if err := clipboard.WriteAll(target.Text); err != nil {
		m.notice = "Failed to copy: " + err.Error()
		return m, clearNotice()
	}
	m.copiedID = target.ID
	m.refreshViewport()
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

func (m Model) toggleDarkMode() Model {
	m.darkMode = !m.darkMode
	m.styles = newStyleSet(m.darkMode)
	m.rebuildRenderer()
	m.refreshViewport()

	v := "false"
	if m.darkMode {
		v = "true"
	}
	m.kv.Set(storage.KeyDarkMode, v)
	return m
}

func (m *Model) moveSelection(delta int) {
	count := m.store.Len()
	if count == 0 {
		return
	}
	idx := m.selected
	if idx < 0 {
		idx = count - 1
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= count-1 {
		idx = -1 // back to "newest"
	}
	m.selected = idx
}

// selectedMessage resolves the selection index, defaulting to the newest
// message.
func (m Model) selectedMessage() *chat.Message {
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		return nil
	}
	idx := m.selected
	if idx < 0 || idx >= len(msgs) {
		idx = len(msgs) - 1
	}
	msg := msgs[idx]
	return &msg
}

// ─── Confirm modal ───

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		action := m.confirm
		id := m.confirmID
		m.confirm = confirmNone
		m.confirmID = ""
		return m.applyConfirmed(action, id)

	case "n", "esc":
		m.confirm = confirmNone
		m.confirmID = ""
		return m, nil
	}
	return m, nil
}

func (m Model) applyConfirmed(action confirmAction, id string) (tea.Model, tea.Cmd) {
	switch action {
	case confirmNewChat:
		m.speech.StopAll()
		m.store.StartNewChat()
		m.textarea.Reset()
		m.selected = -1
		m.refreshViewport()

	case confirmDelete:
		if m.speech.SpeakingID() == id {
			m.speech.StopAll()
		}
		if m.store.DeleteMessage(id) {
			if m.store.EditingID() == "" {
				m.textarea.Reset()
			}
			m.selected = -1
			m.refreshViewport()
		}

	case confirmLogout:
		m.speech.StopAll()
		m.store.StartNewChat()
		m.session.Logout()
		m.textarea.Reset()
		m.selected = -1
		m.screen = screenAuth
		m.authField = 0
		m.username.Focus()
		m.password.Blur()
	}
	return m, nil
}

// ─── Relay ───

func (m Model) send(pending *chat.PendingSend) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		text, err := client.Send(context.Background(), pending.Message, pending.History)
		if err != nil {
			var apiErr *relay.APIError
			if errors.As(err, &apiErr) {
				return errMsg{message: apiErr.Error()}
			}
			return errMsg{message: "Failed to get response from AI."}
		}
		return responseMsg{text: text}
	}
}

// toggleRecording starts or stops voice capture. Capture outcomes come back
// as messages so a recognizer delivering off the update goroutine still
// lands its transcript.
func (m Model) toggleRecording() tea.Cmd {
	ctl := m.speech
	wasRecording := ctl.Recording()
	return func() tea.Msg {
		ch := make(chan tea.Msg, 2)
		ctl.ToggleRecording(
			func(text string, final bool) {
				if final {
					ch <- transcriptMsg{text: text}
				}
			},
			func(message string) {
				ch <- speechNoticeMsg{message: message}
			},
		)
		if wasRecording {
			// Toggled off; no transcript follows.
			return nil
		}
		return <-ch
	}
}

func (m Model) toggleSpeak(messageID, text string) tea.Cmd {
	ctl := m.speech
	return func() tea.Msg {
		ch := make(chan tea.Msg, 1)
		ctl.ToggleSpeak(messageID, text, nil, func(message string) {
			select {
			case ch <- speechNoticeMsg{message: message}:
			default:
			}
		})
		select {
		case msg := <-ch:
			return msg
		default:
			return nil
		}
	}
}

func clearNotice() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// ─── Layout plumbing ───

func (m *Model) layout() {
	headerHeight := 2
	inputHeight := 5
	statusHeight := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
}

func (m *Model) rebuildRenderer() {
	width := m.width - 6
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle(m.darkMode)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// renderMarkdown renders AI text as markdown, falling back to the raw text.
func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	msgs := m.store.Messages()
	var content strings.Builder

	for i, msg := range msgs {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(i, msg))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m *Model) renderMessage(idx int, msg chat.Message) string {
	var label string
	if msg.Sender == models.SenderUser {
		name := m.session.Username()
		if name == "" {
			name = "You"
		}
		label = m.styles.userLabel.Render("⬤ " + name)
	} else {
		label = m.styles.aiLabel.Render("✦ OXT")
	}

	meta := m.styles.timestamp.Render(formatTimestamp(msg.Timestamp))
	if msg.Edited {
		meta += " " + m.styles.edited.Render("(edited)")
	}
	if m.copiedID == msg.ID {
		meta += " " + m.styles.notice.Render("Copied!")
	}
	if m.speech.SpeakingID() == msg.ID {
		meta += " " + m.styles.notice.Render("Speaking…")
	}

	marker := "  "
	if m.isSelected(idx) {
		marker = m.styles.statusKey.Render("▸ ")
	}

	var body string
	if msg.Sender == models.SenderAI {
		body = m.styles.aiBubble.Render(m.renderMarkdown(msg.Text))
	} else {
		body = m.styles.userBubble.Render(msg.Text)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center, marker, label, "  ", meta)
	return header + "\n" + body
}

func (m Model) isSelected(idx int) bool {
	if m.selected < 0 {
		return idx == m.store.Len()-1
	}
	return idx == m.selected
}

// formatTimestamp shortens an RFC3339 timestamp to wall-clock time.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("15:04")
}
