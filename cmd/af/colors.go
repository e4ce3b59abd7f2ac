package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/anyform/go-anyform/treediff"
)

type diffColors struct {
	path func(string, ...any) string
	del  func(string, ...any) string
	ins  func(string, ...any) string
}

// newDiffColors builds the edit renderer palette. The enabled decision is
// made by the caller, so each color is forced on rather than left to the
// package's own terminal detection.
func newDiffColors(enabled bool) diffColors {
	if !enabled {
		return diffColors{path: fmt.Sprintf, del: fmt.Sprintf, ins: fmt.Sprintf}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return diffColors{
		path: mk(color.FgCyan, color.Bold),
		del:  mk(color.FgRed),
		ins:  mk(color.FgGreen),
	}
}

func printEdit(w io.Writer, e treediff.Edit, col diffColors, quiet bool) {
	path := e.Path
	if path == "" {
		path = "$"
	}
	if quiet {
		fmt.Fprintf(w, "%s %s\n", e.Kind, col.path("%s", path))
		return
	}
	switch e.Kind {
	case treediff.Add:
		fmt.Fprintf(w, "%s:\n", col.path("add %s", path))
		fmt.Fprintln(w, col.ins("+ %s", e.To))
	case treediff.Remove:
		fmt.Fprintf(w, "%s:\n", col.path("remove %s", path))
		fmt.Fprintln(w, col.del("- %s", e.From))
	case treediff.Replace:
		fmt.Fprintf(w, "%s:\n", col.path("replace %s", path))
		if e.Text != "" {
			printText(w, e.Text, col)
			return
		}
		fmt.Fprintln(w, col.del("- %s", e.From))
		fmt.Fprintln(w, col.ins("+ %s", e.To))
	}
}

func printText(w io.Writer, text string, col diffColors) {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, col.del("%s", line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, col.ins("%s", line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
