// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package render writes correlated listing entries as an annotated
// terminal view: each source line with its palette color as an ANSI
// background swatch, followed by the assembly block attributed to it.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/asmlens/listing"
)

// Renderer formats correlation entries for a terminal.
type Renderer struct {
	Color bool // If set, emits ANSI true-color backgrounds.
}

// background returns the ANSI prefix/suffix for a palette color, or
// empty strings in monochrome mode or for an unparseable color.
func (ren *Renderer) background(color listing.Color) (prefix, suffix string) {
	if !ren.Color {
		return
	}

	hex := strings.TrimPrefix(string(color), "#")
	if len(hex) != 6 {
		return
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return
	}

	prefix = fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[30m",
		(value>>16)&0xff, (value>>8)&0xff, value&0xff)
	suffix = "\x1b[0m"

	return
}

// Write emits the annotated view for one source file. Entries are
// already in ascending source-line order.
func (ren *Renderer) Write(w io.Writer, path string, entries []listing.Entry) (err error) {
	_, err = fmt.Fprintf(w, "== %v\n", path)
	if err != nil {
		return
	}

	for _, entry := range entries {
		prefix, suffix := ren.background(entry.Color)

		_, err = fmt.Fprintf(w, "%4d | %v%v%v\n", entry.SourceLine, prefix, entry.SourceText, suffix)
		if err != nil {
			return
		}

		for _, line := range strings.Split(entry.AssemblyText, "\n") {
			_, err = fmt.Fprintf(w, "     | %v\n", line)
			if err != nil {
				return
			}
		}
	}

	return
}
