// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package listing

import (
	"strings"

	"github.com/ezrec/asmlens/internal"
)

// Entry is one correlated record: a source line, its text, the assembly
// block the compiler emitted for it, and a display color.
type Entry struct {
	SourceLine   int    // 1-based line number in the source file.
	SourceText   string // Text of that line at compile time.
	AssemblyText string // Attributed instruction lines, newline-joined.
	Color        Color  // Display color for the line.
}

// Assemble resolves a block map against the source text. Entries come
// back in strictly ascending line order, one per source line. A line
// number past the end of the source clamps to the last line; some
// compilers attribute trailing code to an end-of-file sentinel.
func Assemble(blocks BlockMap, source []string, palette Palette) (entries []Entry) {
	for line, instructions := range internal.IterSorted2(blocks) {
		var text string
		if len(source) > 0 {
			text = source[min(line, len(source))-1]
		}

		entries = append(entries, Entry{
			SourceLine:   line,
			SourceText:   text,
			AssemblyText: strings.Join(instructions, "\n"),
			Color:        palette.For(line),
		})
	}

	return
}
