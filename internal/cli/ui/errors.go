package ui

import "strings"

// FormatError renders a fatal error for the terminal, optionally with
// follow-up commands the operator can try.
func FormatError(msg string, suggestions ...string) string {
	lines := []string{StyleBoldRed.Render("Error:") + " " + msg}

	if len(suggestions) > 0 {
		lines = append(lines, "", StyleHint.Render("  Try:"))
		for _, s := range suggestions {
			lines = append(lines, "    "+StyleHint.Render(SymbolArrow)+" "+s)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}
