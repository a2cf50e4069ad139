package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the page styles derived from a theme.
type Styles struct {
	Theme Theme

	Logo      lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Link      lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Arrow     lipgloss.Style
	Dot       lipgloss.Style
	DotActive lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Canvas    lipgloss.Style
	HUDLabel  lipgloss.Style
	HUDValue  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Logo:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Nav:   lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Link: lipgloss.NewStyle().Foreground(t.Accent).Underline(true),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Footer: lipgloss.NewStyle().
			Foreground(t.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(t.Border),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Arrow:     lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Dot:       lipgloss.NewStyle().Foreground(t.Muted),
		DotActive: lipgloss.NewStyle().Foreground(t.Accent),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Body:      lipgloss.NewStyle().Foreground(t.Text),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Warning:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Canvas:    lipgloss.NewStyle().Foreground(t.Primary),
		HUDLabel:  lipgloss.NewStyle().Foreground(t.Muted),
		HUDValue:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// Separator is a muted rule with a center mark.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Muted.Render(left + " ◆ " + right)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
