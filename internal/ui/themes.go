package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the presenter
type Theme struct {
	Name string

	// Brand colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Progress   lipgloss.AdaptiveColor
	Track      lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, border, foreground, muted, highlight, progress, track [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Highlight:  lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
		Progress:   lipgloss.AdaptiveColor{Light: progress[0], Dark: progress[1]},
		Track:      lipgloss.AdaptiveColor{Light: track[0], Dark: track[1]},
	}
}

// BrandTheme uses the deck's accent for every brand-colored element on a
// stone palette
func BrandTheme(accent string) Theme {
	a := [2]string{accent, accent}
	return buildTheme("brand",
		a, [2]string{"#57534E", "#A8A29E"}, a,
		[2]string{"#15803D", "#4ADE80"}, [2]string{"#B45309", "#FBBF24"},
		[2]string{"#E7E5E4", "#44403C"}, [2]string{"#1C1917", "#FAFAF9"},
		[2]string{"#A8A29E", "#78716C"}, [2]string{"#FEF2F2", "#3F1D1D"},
		a, [2]string{"#F3F4F6", "#292524"})
}

// Available fixed themes
var (
	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CCCCCC", "#333333"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#F7FAFC", "#2D3748"},
		[2]string{"#4A5568", "#CBD5E0"}, [2]string{"#EDF2F7", "#2D3748"})
)

// ThemeByName resolves a configured theme name. The brand theme is built
// from accent.
func ThemeByName(name, accent string) (Theme, bool) {
	switch name {
	case "brand", "":
		return BrandTheme(accent), true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return Theme{}, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"brand", "high-contrast", "minimal"}
}

// NewStyles builds the presenter styles for a theme
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,

		// Base styles
		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Eyebrow: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Accent: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		// Layout styles
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		HighlightCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1).
			Bold(true),

		Mark: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary).
			Padding(0, 1).
			Bold(true),

		// Chat styles
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary).
			Padding(0, 1),

		BotBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Highlight).
			Padding(0, 1),

		// Footer styles
		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Base styles
	Title    lipgloss.Style
	Eyebrow  lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style

	// Layout styles
	Card          lipgloss.Style
	HighlightCard lipgloss.Style
	Panel         lipgloss.Style
	Badge         lipgloss.Style
	Mark          lipgloss.Style

	// Chat styles
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style

	// Footer styles
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
}
