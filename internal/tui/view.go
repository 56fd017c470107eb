package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.screen == screenAuth {
		return m.viewAuth()
	}
	return m.viewChat()
}

// ─── Auth screen ───

func (m Model) viewAuth() string {
	var b strings.Builder

	title := "Login to OXTCHAT"
	action := "Login"
	switchHint := "Ctrl+S Register instead"
	if m.authMode == authRegister {
		title = "Create an OXTCHAT account"
		action = "Register"
		switchHint = "Ctrl+S Login instead"
	}

	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.styles.authFieldName.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.username.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.authFieldName.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.authError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.errBanner.Render(m.authError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	shortcuts := []string{
		m.styles.statusKey.Render("Enter") + m.styles.statusDesc.Render(" "+action),
		m.styles.statusKey.Render("Tab") + m.styles.statusDesc.Render(" Switch field"),
		m.styles.statusKey.Render("Ctrl+G") + m.styles.statusDesc.Render(" Continue as Guest"),
		m.styles.statusDesc.Render(switchHint),
	}
	b.WriteString(strings.Join(shortcuts, "  │  "))

	box := m.styles.authBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// ─── Chat screen ───

func (m Model) viewChat() string {
	if !m.ready {
		return m.styles.loading.Render("  Initializing...")
	}

	if m.confirm != confirmNone {
		return m.viewConfirm()
	}

	var sections []string

	// Header
	theme := "dark"
	if !m.darkMode {
		theme = "light"
	}
	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.styles.title.Render("✦ OXTCHAT"),
		m.styles.hint.Render("  •  "),
		m.styles.subtitle.Render(m.session.Username()),
		m.styles.hint.Render("  •  "),
		m.styles.subtitle.Render(theme),
	)
	sections = append(sections, header, "")

	// Messages
	if m.store.Len() == 0 {
		sections = append(sections, m.viewWelcome())
	} else {
		sections = append(sections, m.viewport.View())
	}

	// Error banner
	if apiErr := m.store.Error(); apiErr != "" {
		sections = append(sections, m.styles.errBanner.Render("⚠ "+apiErr))
	}
	if m.notice != "" {
		sections = append(sections, m.styles.notice.Render(m.notice))
	}

	// Input area
	sections = append(sections, m.viewInput())

	// Status bar
	sections = append(sections, m.viewStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewWelcome() string {
	lines := []string{
		"",
		m.styles.title.Render("Welcome to OXTCHAT"),
		m.styles.hint.Render("Start a conversation by typing a message below"),
		"",
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Center, content)
}

func (m Model) viewInput() string {
	var b strings.Builder

	if names := m.store.Attachments(); len(names) > 0 {
		b.WriteString(m.styles.hint.Render("📎 " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	label := "You"
	if m.store.EditingID() != "" {
		label = "Editing message"
	}

	if m.store.InFlight() {
		b.WriteString(m.styles.loading.Render(m.spinner.View() + " OXT is thinking..."))
	} else {
		b.WriteString(m.styles.inputLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.textarea.View())
	}

	return b.String()
}

func (m Model) viewStatusBar() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+↑↓", "Select"},
		{"Ctrl+E", "Edit"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+D", "Delete"},
		{"Ctrl+N", "New chat"},
		{"Ctrl+T", "Theme"},
		{"Ctrl+L", "Logout"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, m.styles.statusKey.Render(s.key)+m.styles.statusDesc.Render(" "+s.desc))
	}
	return strings.Join(items, "  │  ")
}

func (m Model) viewConfirm() string {
	var question string
	switch m.confirm {
	case confirmNewChat:
		question = "Start a new chat? The current conversation will be cleared."
	case confirmDelete:
		question = "Delete this message?"
	case confirmLogout:
		question = "Log out? The conversation will be cleared."
	}

	var b strings.Builder
	b.WriteString(m.styles.confirmTitle.Render(question))
	b.WriteString("\n\n")
	b.WriteString(m.styles.statusKey.Render("Y") + m.styles.statusDesc.Render(" Confirm"))
	b.WriteString("  │  ")
	b.WriteString(m.styles.statusKey.Render("N") + m.styles.statusDesc.Render(" Cancel"))

	box := m.styles.confirmBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
