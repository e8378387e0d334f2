// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package driver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ezrec/asmlens/listing"
)

// Sink receives the outcome of a correlation pass. Implementations own
// all user-visible messaging; the driver and the core never log or
// prompt on the result path.
type Sink interface {
	// Apply delivers the correlated entries for a source file.
	Apply(path string, entries []listing.Entry)
	// Empty reports that the compiler produced no assembly for the file,
	// a valid outcome distinct from failure (e.g. a header-only file).
	Empty(path string)
	// Failed reports a compile or parse failure for the file.
	Failed(path string, err error)
}

// Job is one correlation pass for one source file. A Job holds no state
// across runs; every Run is independent and restartable.
type Job struct {
	Profile *Profile        // Compiler profile for the command.
	Command []string        // Original compile command, compiler first.
	Source  string          // Path of the source file under analysis.
	Palette listing.Palette // Display palette; nil selects the default.
	Verbose bool            // If set, verbosely logs listing parsing.
}

// SplitLines splits source text into lines, dropping the empty tail a
// trailing newline produces.
func SplitLines(text string) (lines []string) {
	lines = strings.Split(text, "\n")
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return
}

// Run compiles a temporary copy of sourceText with listing flags
// substituted in, parses the listing, and assembles the correlated
// entries. An empty result means the compiler emitted no assembly for
// this file.
func (job *Job) Run(ctx context.Context, sourceText string) (entries []listing.Entry, err error) {
	if len(job.Command) == 0 {
		err = ErrCommandEmpty
		return
	}

	dir, err := os.MkdirTemp("", "asmlens-*")
	if err != nil {
		return
	}
	defer os.RemoveAll(dir)

	// The compiler echoes the temp-copy path into the listing; that
	// exact string, not the original source path, is the parse target.
	source := filepath.Join(dir, filepath.Base(job.Source))
	err = os.WriteFile(source, []byte(sourceText), 0o644)
	if err != nil {
		return
	}

	listingPath := filepath.Join(dir, filepath.Base(job.Source)+".asm")

	args := job.Profile.Rewrite(job.Command[1:], listingPath)
	for n, arg := range args {
		if arg == job.Source {
			args[n] = source
		}
	}

	cmd := exec.CommandContext(ctx, job.Command[0], args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		err = &ErrCompile{Command: job.Command, Output: string(output), Err: err}
		return
	}

	input, err := os.Open(listingPath)
	if err != nil {
		err = ErrNoListing
		return
	}
	defer input.Close()

	dialect, err := listing.DialectByName(job.Profile.Dialect, job.Verbose)
	if err != nil {
		return
	}

	lines := SplitLines(sourceText)
	blocks, err := dialect.Parse(input, source, len(lines))
	if err != nil {
		return
	}

	palette := job.Palette
	if palette == nil {
		palette = listing.DefaultPalette
	}
	entries = listing.Assemble(blocks, lines, palette)

	return
}

// Correlate is the one-shot driver: read the source file, pick a
// profile for the command, and run a single Job.
func Correlate(ctx context.Context, profiles []Profile, command []string, source string, verbose bool) (entries []listing.Entry, lines []string, err error) {
	pro, err := ProfileFor(profiles, command)
	if err != nil {
		return
	}

	text, err := os.ReadFile(source)
	if err != nil {
		return
	}
	lines = SplitLines(string(text))

	job := &Job{
		Profile: pro,
		Command: command,
		Source:  source,
		Verbose: verbose,
	}
	entries, err = job.Run(ctx, string(text))

	return
}
