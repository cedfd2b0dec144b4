package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// promptForToken asks for a personal access token without echoing it.
func promptForToken() (string, error) {
	var token string
	field := huh.NewInput().
		Title("GitHub personal access token").
		Description("Needs the repo scope. It is saved to your tissue config.").
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token cannot be empty")
			}
			return nil
		}).
		Value(&token)

	if err := field.Run(); err != nil {
		return "", err
	}
	return token, nil
}

// isInteractiveTTY checks if stdin is connected to an interactive terminal.
func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
