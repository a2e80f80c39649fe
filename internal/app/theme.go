package app

import "charm.land/lipgloss/v2"

var (
	headerStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	introStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	promptStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)
	exampleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	warningStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	stepDoneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	stepActiveStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true)
	stepPendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	focusMarkerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	scoreFilledStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	visionFilledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	scoreEmptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	gapPositiveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	gapNegativeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	buttonStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	buttonDisabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
	dialogBodyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	dialogTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	dialogBorderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	reflectionFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("69")).
				Padding(0, 1)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
