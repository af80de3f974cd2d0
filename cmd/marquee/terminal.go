package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// minTableWidth keeps narrow terminals from squeezing tables to nothing.
const minTableWidth = 40

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// terminalWidth returns the column count of w when it is a terminal, or 0
// when the width is unknown and tables should not be capped.
func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	ws, err := unix.IoctlGetWinsize(int(w.(*os.File).Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0
	}
	if int(ws.Col) < minTableWidth {
		return minTableWidth
	}
	return int(ws.Col)
}
