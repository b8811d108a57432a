package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"        _             _",
	"   _ __(_)_ __   __ _| | ___ _ __  ___",
	"  | '__| | '_ \\ / _` | |/ _ \\ '_ \\/ __|",
	"  | |  | | | | | (_| | |  __/ | | \\__ \\",
	"  |_|  |_|_| |_|\\__, |_|\\___|_| |_|___/",
	"                |___/",
}

// Indigo to rose, one shade per banner line.
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes the ringlens banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
