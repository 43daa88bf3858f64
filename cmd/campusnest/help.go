package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type command struct{ cmd, desc string }

var commands = []command{
	{"campusnest", "Open the app (interactive TUI)"},
	{"campusnest login", "Sign in"},
	{"campusnest register", "Create an account, then open the app"},
	{"campusnest logout", "Forget the profile cached on this device"},
	{"campusnest terms", "Terms of Service"},
	{"campusnest privacy", "Privacy Policy"},
	{"campusnest support", "Help Center"},
	{"campusnest --version", "Show version"},
	{"campusnest help", "You are here"},
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5eead4")).
		Bold(true).
		Render("C A M P U S N E S T")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Student housing, matched to you.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Printf("\n  %s\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Printf("\n  Environment:\n")
	env := []command{
		{"CAMPUSNEST_API_URL", "API root (default https://api.campusnest.app)"},
		{"CAMPUSNEST_HOME", "profile cache and log dir (default ~/.campusnest)"},
		{"CAMPUSNEST_LOG_LEVEL", "debug, info, warn, error"},
		{"CAMPUSNEST_REALTIME", "live notifications and chat (default true)"},
	}
	for _, e := range env {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", e.cmd)), descStyle.Render(e.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://campusnest.app")
	fmt.Printf("\n  %s\n\n", url)
}
