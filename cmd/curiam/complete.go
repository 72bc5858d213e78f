package main

import (
	"fmt"
	"strings"
)

var commands = []string{
	"import",
	"simplify",
	"spans",
	"doc",
	"stat",
	"ls-doc",
	"ls-categories",
	"query",
	"export",
	"bash",
	"version",
	"help",
}

// completeCommand handles the autocompletion requests triggered by the bash completion script.
func completeCommand(args []string, ui UI) error {
	completions := getCompletions(args)
	for _, c := range completions {
		_, _ = fmt.Fprintln(ui.Out, c)
	}
	return nil
}

// getCompletions completes the command name. args[0] is the binary name
// from COMP_WORDS[0].
func getCompletions(args []string) []string {
	if len(args) < 1 {
		return nil
	}

	commandIndex := 1
	cursorIndex := len(args) - 1

	if cursorIndex != commandIndex {
		return nil
	}

	// User is typing the command itself
	lastWord := args[cursorIndex]
	var completions []string
	for _, c := range commands {
		if strings.HasPrefix(c, lastWord) {
			completions = append(completions, c)
		}
	}
	return completions
}
