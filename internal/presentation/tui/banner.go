package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the glint banner to w, colored when w is a capable terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"        _ _       _   ", "#22d3ee"},
		{"   __ _| (_)_ __ | |_ ", "#38bdf8"},
		{"  / _` | | | '_ \\| __|", "#60a5fa"},
		{" | (_| | | | | | | |_ ", "#818cf8"},
		{"  \\__, |_|_|_| |_|\\__|", "#a78bfa"},
		{"  |___/               ", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  session store "+version).Faint())
	fmt.Fprintln(w)
}
