package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokerengine/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	redSuit   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	blackSuit = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// renderCards shows cards with suit symbols, red suits coloured.
func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackSuit
		if c.Suit.IsRed() {
			style = redSuit
		}
		parts[i] = style.Render(c.Rank.String() + c.Suit.Symbol())
	}
	return strings.Join(parts, " ")
}

// newTable returns a bordered table with a styled header row.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// signed styles a signed amount green or red.
func signed(s string, positive, negative bool) string {
	switch {
	case positive:
		return winStyle.Render("+" + s)
	case negative:
		return loseStyle.Render(s)
	}
	return s
}
