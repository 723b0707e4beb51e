// Package display provides the banner, human-readable formatting, and the
// live per-file progress bar.
package display

import (
	"fmt"
	"os"

	"github.com/backmassage/framefit/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  __                          __ _ _
 / _|_ __ __ _ _ __ ___   ___ / _(_) |_
| |_| '__/ _`+"`"+` | '_ `+"`"+` _ \ / _ \ |_| | __|
|  _| | | (_| | | | | | |  __/  _| | |_
|_| |_|  \__,_|_| |_| |_|\___|_| |_|\__|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
