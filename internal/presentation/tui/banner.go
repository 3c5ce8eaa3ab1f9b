package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for requery.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String(`                                          `).Foreground(p.Color("#818cf8"))
	s2 := termenv.String(`  _ __ ___  __ _ _   _  ___ _ __ _   _    `).Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(` | '__/ _ \/ _' | | | |/ _ \ '__| | | |   `).Foreground(p.Color("#c084fc"))
	s4 := termenv.String(` | | |  __/ (_| | |_| |  __/ |  | |_| |   `).Foreground(p.Color("#e879f9"))
	s5 := termenv.String(` |_|  \___|\__, |\__,_|\___|_|   \__, |   `).Foreground(p.Color("#f472b6"))
	s6 := termenv.String(`              |_|                |___/    `).Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
