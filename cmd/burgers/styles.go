package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func printHeader(title, sub string) {
	fmt.Println(headerStyle.Render(title))
	if sub != "" {
		fmt.Println(subStyle.Render(sub))
	}
	fmt.Println()
}

func stableLabel(unstable bool) string {
	if unstable {
		return errStyle.Render("unstable")
	}
	return okStyle.Render("stable")
}
