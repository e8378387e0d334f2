package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text  string
		lines []string
	}{
		{"", nil},
		{"int x;", []string{"int x;"}},
		{"int x;\n", []string{"int x;"}},
		{"int x;\nint y;\n", []string{"int x;", "int y;"}},
		{"\n\n", []string{"", ""}},
	}

	for _, entry := range table {
		lines := SplitLines(entry.text)
		if entry.lines == nil {
			// strings.Split never returns an empty slice; "" is one
			// empty line, which SplitLines drops as the empty tail.
			assert.Equal(0, len(lines), "%q", entry.text)
		} else {
			assert.Equal(entry.lines, lines, "%q", entry.text)
		}
	}
}

func TestJobRunCompileError(t *testing.T) {
	assert := assert.New(t)

	pro := &Profile{Name: "missing", Command: []string{"asmlens-no-such-compiler"}, Dialect: "msvc"}
	job := &Job{
		Profile: pro,
		Command: []string{"asmlens-no-such-compiler", "/c", "main.c"},
		Source:  "main.c",
	}

	_, err := job.Run(context.Background(), "int main(void) { return 0; }\n")
	var ec *ErrCompile
	assert.ErrorAs(err, &ec)
}

// TestJobRun uses a shell script standing in for the compiler: it
// receives the temp source copy and the listing path, and emits a
// minimal listing that echoes the copy path the way cl does.
func TestJobRun(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "fakecl.sh")
	err := os.WriteFile(script, []byte(
		"#!/bin/sh\n"+
			"printf '; File %s\\n; 1 :\\n\\tret\\t0\\n' \"$1\" > \"$2\"\n",
	), 0o755)
	assert.NoError(err)

	source := filepath.Join(dir, "main.c")
	pro := &Profile{
		Name:    "fake",
		Command: []string{"sh"},
		Listing: []string{ListingSlot},
		Dialect: "msvc",
	}
	job := &Job{
		Profile: pro,
		Command: []string{"sh", script, source},
		Source:  source,
	}

	entries, err := job.Run(context.Background(), "int main;\n")
	assert.NoError(err)

	if assert.Equal(1, len(entries)) {
		assert.Equal(1, entries[0].SourceLine)
		assert.Equal("int main;", entries[0].SourceText)
		assert.Equal("\tret\t0", entries[0].AssemblyText)
	}
}

func TestJobRunEmptyCommand(t *testing.T) {
	assert := assert.New(t)

	job := &Job{Profile: &Builtin[0]}
	_, err := job.Run(context.Background(), "")
	assert.ErrorIs(err, ErrCommandEmpty)
}
