package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for QuoteTree.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal to amber gradient
	s1 := termenv.String("   ____              _     _____            ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / __ \\ _   _  ___ | |_  |_   _| __ ___  ___").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" | |  | | | | |/ _ \\| __|   | || '__/ _ \\/ _ \\").Foreground(p.Color("#a3e635"))
	s4 := termenv.String(" | |__| | |_| | (_) | |_    | || | |  __/  __/").Foreground(p.Color("#facc15"))
	s5 := termenv.String("  \\___\\_\\\\__,_|\\___/ \\__|   |_||_|  \\___|\\___|").Foreground(p.Color("#fb923c"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	if version != "" {
		v := termenv.String("  v" + version).Foreground(p.Color("#94a3b8"))
		fmt.Println(v)
	}
	fmt.Println()
}
