package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _____                         ___`, "#34d399"},
	{`|_   _|__ _ _ _ __ _  ___ __  |   \ _____ __`, "#2dd4bf"},
	{`  | |/ -_) '_| '  \ || \ \ / | |) / -_) V /`, "#22d3ee"},
	{`  |_|\___|_| |_|_|_\_,_/_\_\ |___/\___|\_/`, "#38bdf8"},
}

// PrintBanner writes the TermuxDev banner followed by the version line.
// Colors degrade to whatever the destination supports.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  Java & Gradle on Android, v"+version).Faint())
	}
	fmt.Fprintln(w)
}
