package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether stdout is connected to a terminal (TTY).
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printHeader prints a tab-separated column header, but only when stdout
// is a TTY, so piped output stays machine-readable.
func printHeader(columns string) {
	if isTerminal() {
		fmt.Println(columns)
	}
}
