package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"velar/internal/snapshot"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	fakeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	declStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderPayload prints the member tables of one lowered hierarchy.
func renderPayload(w io.Writer, path string, p *snapshot.Payload, colored bool) {
	style := func(s lipgloss.Style, v string) string {
		if !colored {
			return v
		}
		return s.Render(v)
	}

	fmt.Fprintf(w, "%s\n", style(dimStyle, path))
	for _, cls := range p.Classes {
		title := fmt.Sprintf("class %s (package %s)", cls.Name, cls.Package)
		fmt.Fprintf(w, "%s\n", style(headerStyle, title))

		nameWidth := 0
		for _, m := range cls.Members {
			if w := runewidth.StringWidth(m.Name); w > nameWidth {
				nameWidth = w
			}
		}
		for _, m := range cls.Members {
			origin := m.Origin
			if m.Origin == "fake-override" {
				origin = style(fakeStyle, origin)
			} else {
				origin = style(declStyle, origin)
			}
			fmt.Fprintf(w, "  %s %s  %s %s %s%s\n",
				m.Kind,
				pad(m.Name, nameWidth),
				m.Visibility,
				m.Type,
				origin,
				overridesSuffix(m),
			)
		}
		fmt.Fprintln(w)
	}
}

func overridesSuffix(m snapshot.Member) string {
	var parts []string
	if len(m.Overridden) > 0 {
		parts = append(parts, "overrides "+strings.Join(m.Overridden, ", "))
	}
	if m.Kind == "prop" {
		if m.Getter.Present {
			parts = append(parts, "get:"+m.Getter.Visibility)
		}
		if m.Setter.Present {
			parts = append(parts, "set:"+m.Setter.Visibility)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  [" + strings.Join(parts, "; ") + "]"
}

func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
