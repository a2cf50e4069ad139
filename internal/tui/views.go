package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mverhelle/folio/internal/projects"
)

const (
	arrowWidth   = 3
	maxCardWidth = 72
	minBody      = 3
)

func (m Model) View() string {
	var body string
	switch m.route.Page {
	case PageHome:
		body = m.viewHome()
	case PageAbout, PageProject, PageContact:
		body = m.viewport.View()
	case PagePlay:
		body = m.viewPlay()
	default:
		body = m.viewNotFound()
	}
	h := m.bodyHeight()
	body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)

	bottom := m.help.View(m.keys)
	if m.prompting {
		bottom = m.prompt.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), body, m.viewFooter(), bottom)
}

func (m Model) viewHeader() string {
	logo := m.styles.Logo.Render(m.cfg.Site.Initials)

	items := []struct {
		label string
		page  Page
	}{
		{"about", PageAbout},
		{"projects", PageHome},
		{"contact", PageContact},
		{"play", PagePlay},
	}
	nav := make([]string, 0, len(items))
	for _, it := range items {
		if it.page == PageContact && strings.TrimSpace(m.cfg.Site.Contact) == "" {
			continue
		}
		style := m.styles.Nav
		if m.route.Page == it.page || (it.page == PageHome && m.route.Page == PageProject) {
			style = m.styles.NavActive
		}
		nav = append(nav, style.Render(it.label))
	}

	left := logo + "  " + strings.Join(nav, "")
	right := m.styles.Link.Render(m.cfg.Site.GitHub)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) viewFooter() string {
	text := fmt.Sprintf("© %d %s. All rights reserved.", m.now().Year(), m.cfg.Site.Name)
	return m.styles.Footer.Width(m.width).Render(text)
}

func (m Model) headerHeight() int { return lipgloss.Height(m.viewHeader()) }

func (m Model) bodyHeight() int {
	bottom := m.help.View(m.keys)
	if m.prompting {
		bottom = m.prompt.View()
	}
	h := m.height - m.headerHeight() - lipgloss.Height(m.viewFooter()) - lipgloss.Height(bottom)
	return max(h, minBody)
}

func (m Model) viewHome() string {
	parts := []string{m.viewCarouselRow()}
	if dots := m.viewDots(); dots != "" {
		parts = append(parts, strings.Repeat(" ", arrowWidth)+dots)
	}
	parts = append(parts, "", m.viewTeaser())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewCarouselRow is the card flanked by the arrow gutters. The gutters keep
// their width while the arrows are hidden.
func (m Model) viewCarouselRow() string {
	card := m.viewCard()
	h := lipgloss.Height(card)
	left := lipgloss.NewStyle().Width(arrowWidth).Height(h).Render("")
	right := left
	if m.carousel.ControlsVisible() {
		mid := lipgloss.NewStyle().Width(arrowWidth).Height(h).AlignVertical(lipgloss.Center).Align(lipgloss.Center)
		left = mid.Render(m.styles.Arrow.Render("‹"))
		right = mid.Render(m.styles.Arrow.Render("›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, card, right)
}

func (m Model) cardWidth() int {
	w := m.width - 2*arrowWidth - 2
	return min(max(w, 24), maxCardWidth)
}

func (m Model) viewCard() string {
	style := m.styles.Card.Width(m.cardWidth())
	p, ok := m.carousel.Current()
	if !ok {
		return style.Render(m.styles.Muted.Render("No projects yet."))
	}

	lines := []string{m.styles.CardTitle.Render(p.Title), ""}
	switch kind, url := p.Media(); kind {
	case projects.MediaVideo:
		lines = append(lines, m.styles.Body.Render("▶ video  ")+m.styles.Muted.Render(url))
	case projects.MediaImage:
		lines = append(lines, m.styles.Body.Render("▣ image  ")+m.styles.Muted.Render(url))
	default:
		lines = append(lines, m.styles.Muted.Render("no media"))
	}
	if len(p.Tags) > 0 {
		lines = append(lines, m.styles.Muted.Render(strings.Join(p.Tags, " · ")))
	}
	lines = append(lines, "", m.styles.Link.Render(p.Route()))
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) viewDots() string {
	n := m.carousel.Len()
	if n < 2 {
		return ""
	}
	dots := make([]string, n)
	for i := range dots {
		if i == m.carousel.Index() {
			dots[i] = m.styles.DotActive.Render("●")
		} else {
			dots[i] = m.styles.Dot.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (m Model) viewTeaser() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("About"),
		m.styles.Body.Render(m.cfg.Site.Bio),
		m.styles.Link.Render("/about"),
	)
}

func (m Model) viewNotFound() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Render("404"),
		m.styles.Body.Render(fmt.Sprintf("%s not found", m.route.Path)),
		"",
		m.styles.Muted.Render("esc to go home"),
	)
}

func projectMarkdown(p projects.Project) string {
	var b strings.Builder
	if !strings.HasPrefix(strings.TrimSpace(p.Summary), "#") {
		fmt.Fprintf(&b, "# %s\n\n", p.Title)
	}
	b.WriteString(p.Summary)
	b.WriteString("\n\n")
	switch kind, url := p.Media(); kind {
	case projects.MediaVideo:
		fmt.Fprintf(&b, "**Video:** %s\n\n", url)
	case projects.MediaImage:
		fmt.Fprintf(&b, "**Image:** %s\n\n", url)
	}
	if len(p.Tags) > 0 {
		b.WriteString("**Tags:** " + strings.Join(p.Tags, ", ") + "\n")
	}
	return b.String()
}

func splitLines(s string) []string { return strings.Split(s, "\n") }

func textWidth(s string) int { return lipgloss.Width(s) }
