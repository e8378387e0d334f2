// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package listing

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// BlockMap maps a 1-based source line number to the ordered raw
// instruction lines the compiler attributed to it.
type BlockMap map[int][]string

// noLine is the "no attribution" sentinel for parserState.current.
const noLine = 0

// parserState is the per-parse state machine record. A fresh state is
// created for every Parse call; it is never reused across parses.
type parserState struct {
	inFile    bool // Inside a fragment describing the target file.
	inSegment bool // Between a SEGMENT marker and its ENDS/ENDP.
	current   int  // Line subsequent instructions attribute to, or noLine.
}

// Parser is a single-pass parser for MSVC-style assembly listings.
type Parser struct {
	TargetFile string // Exact path the listing echoes for the file under analysis.
	TotalLines int    // Line count of the source text at compile time.
	Verbose    bool   // If set, verbosely logs each listing line.
}

var (
	fileRe         = regexp.MustCompile(`^;\s*File\s+(.+?)\s*$`)
	lineRe         = regexp.MustCompile(`^;\s*(\d\S*)\s*:`)
	segmentOpenRe  = regexp.MustCompile(`^\S+\s+SEGMENT\b`)
	segmentCloseRe = regexp.MustCompile(`^\S+\s+(ENDS|ENDP)\b`)
)

// step applies one listing line to the state, appending any attributed
// instruction to acc. The checks run in precedence order: file marker,
// target gate, segment markers, line directive, blank, boilerplate,
// instruction.
func (par *Parser) step(st *parserState, text string, acc BlockMap) (err error) {
	if m := fileRe.FindStringSubmatch(text); m != nil {
		if m[1] == par.TargetFile {
			st.inFile = true
		} else {
			st.inFile = false
			st.inSegment = false
			st.current = noLine
		}
		return
	}

	if !st.inFile {
		return
	}

	if segmentOpenRe.MatchString(text) {
		st.inSegment = true
		return
	}

	if segmentCloseRe.MatchString(text) {
		st.inSegment = false
		st.current = noLine
		return
	}

	if m := lineRe.FindStringSubmatch(text); m != nil {
		var lineno int
		lineno, err = strconv.Atoi(m[1])
		if err != nil {
			err = ErrParseLineNumber(m[1])
			return
		}
		// A line directive only occurs inside code text, and the `; File`
		// marker it follows sits inside the segment it describes. Take it
		// as witnessing an open segment.
		st.inSegment = true
		// Out-of-range directives and re-announcements of a line that
		// already has a block are noise from inlined or synthetic code.
		// First occurrence wins; instructions that follow are dropped.
		_, seen := acc[lineno]
		if lineno > par.TotalLines || seen {
			st.current = noLine
			return
		}
		st.current = lineno
		return
	}

	if len(strings.TrimSpace(text)) == 0 {
		return
	}

	if text[0] != '\t' && text[0] != ' ' {
		// Unindented and not a directive: segment boilerplate (PROC
		// headers, COMDAT notes). Ends any current attribution.
		st.current = noLine
		return
	}

	if st.inSegment && st.current != noLine {
		acc[st.current] = append(acc[st.current], text)
	}

	return
}

// Parse consumes a raw listing and returns the block map for the target
// file. A listing with no fragment for the target yields an empty map.
func (par *Parser) Parse(input io.Reader) (blocks BlockMap, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrListing{LineNo: lineno, Line: text, Err: err}
			blocks = nil
		}
	}()

	blocks = BlockMap{}
	state := &parserState{current: noLine}

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if par.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		err = par.step(state, text, blocks)
		if err != nil {
			return
		}
	}

	err = scanner.Err()

	return
}
