// Package tui provides the terminal user interface for OXTCHAT.
package tui

import "github.com/charmbracelet/lipgloss"

// styleSet holds every style the UI renders with. Two sets exist, dark and
// light, mirroring the app's theme toggle.
type styleSet struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	hint     lipgloss.Style

	userLabel  lipgloss.Style
	aiLabel    lipgloss.Style
	timestamp  lipgloss.Style
	edited     lipgloss.Style
	userBubble lipgloss.Style
	aiBubble   lipgloss.Style

	inputLabel lipgloss.Style
	errBanner  lipgloss.Style
	notice     lipgloss.Style
	loading    lipgloss.Style

	statusKey  lipgloss.Style
	statusDesc lipgloss.Style

	confirmBox    lipgloss.Style
	confirmTitle  lipgloss.Style
	authBox       lipgloss.Style
	authFieldName lipgloss.Style
}

func newStyleSet(dark bool) styleSet {
	var (
		primary lipgloss.Color
		text    lipgloss.Color
		dim     lipgloss.Color
		errFg   lipgloss.Color
		userFg  lipgloss.Color
		aiFg    lipgloss.Color
	)

	if dark {
		primary = lipgloss.Color("75")
		text = lipgloss.Color("252")
		dim = lipgloss.Color("243")
		errFg = lipgloss.Color("203")
		userFg = lipgloss.Color("81")
		aiFg = lipgloss.Color("114")
	} else {
		primary = lipgloss.Color("26")
		text = lipgloss.Color("235")
		dim = lipgloss.Color("245")
		errFg = lipgloss.Color("160")
		userFg = lipgloss.Color("25")
		aiFg = lipgloss.Color("28")
	}

	border := lipgloss.RoundedBorder()

	return styleSet{
		title:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(dim),
		hint:     lipgloss.NewStyle().Foreground(dim),

		userLabel:  lipgloss.NewStyle().Foreground(userFg).Bold(true),
		aiLabel:    lipgloss.NewStyle().Foreground(aiFg).Bold(true),
		timestamp:  lipgloss.NewStyle().Foreground(dim),
		edited:     lipgloss.NewStyle().Foreground(dim).Italic(true),
		userBubble: lipgloss.NewStyle().Foreground(text).PaddingLeft(2),
		aiBubble:   lipgloss.NewStyle().Foreground(text).PaddingLeft(2),

		inputLabel: lipgloss.NewStyle().Foreground(primary).Bold(true),
		errBanner:  lipgloss.NewStyle().Foreground(errFg).Bold(true),
		notice:     lipgloss.NewStyle().Foreground(primary),
		loading:    lipgloss.NewStyle().Foreground(primary),

		statusKey:  lipgloss.NewStyle().Foreground(primary).Bold(true),
		statusDesc: lipgloss.NewStyle().Foreground(dim),

		confirmBox: lipgloss.NewStyle().
			Border(border).
			BorderForeground(primary).
			Padding(1, 2),
		confirmTitle: lipgloss.NewStyle().Foreground(text).Bold(true),
		authBox: lipgloss.NewStyle().
			Border(border).
			BorderForeground(primary).
			Padding(1, 3),
		authFieldName: lipgloss.NewStyle().Foreground(dim),
	}
}

// glamourStyle maps the theme to glamour's standard style names.
func glamourStyle(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
