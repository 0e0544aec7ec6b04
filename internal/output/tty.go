package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	if stdout != os.Stdout {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
