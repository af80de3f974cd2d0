package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errNoSelection is returned when input ends before a valid choice.
var errNoSelection = errors.New("no title selected")

// pickTitle lists titles with 1-based numbers and reads a choice from in.
// Invalid entries re-prompt until input ends.
func pickTitle(in io.Reader, out io.Writer, titles []string) (string, error) {
	if len(titles) == 0 {
		return "", errNoSelection
	}
	for i, title := range titles {
		fmt.Fprintf(out, "%3d) %s\n", i+1, title)
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Select a title [1-%d]: ", len(titles))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("read selection: %w", err)
			}
			return "", errNoSelection
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(titles) {
			fmt.Fprintf(out, "Enter a number between 1 and %d.\n", len(titles))
			continue
		}
		return titles[choice-1], nil
	}
}
