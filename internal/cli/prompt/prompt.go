// Package prompt provides the interactive input helpers the CLI uses
// for credentials and confirmations.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Line prompts with label and returns the trimmed input. Empty input
// re-prompts until something is entered.
func Line(label string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		v := strings.TrimSpace(line)
		if v == "" {
			fmt.Printf("%s cannot be empty.\n", label)
			continue
		}
		return v, nil
	}
}

// Password reads masked input. Falls back to a plain line read when
// stdin is not a terminal.
func Password(label string) (string, error) {
	fmt.Printf("%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, rerr := reader.ReadString('\n')
		if rerr != nil {
			return "", rerr
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Println()
	return strings.TrimSpace(string(b)), nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(message string) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s [y/N]: ", message)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return true
		case "n", "no", "":
			return false
		default:
			fmt.Println("Please enter 'y' or 'n'.")
		}
	}
}
