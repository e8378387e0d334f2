package listing

import (
	"io"
)

// Dialect parses one compiler family's listing format into a BlockMap.
type Dialect interface {
	// Parse consumes a raw listing for targetFile, whose source text had
	// totalLines lines at compile time.
	Parse(input io.Reader, targetFile string, totalLines int) (BlockMap, error)
}

// Msvc is the MSVC `/FAs` listing dialect.
type Msvc struct {
	Verbose bool
}

var _ Dialect = (*Msvc)(nil)

func (dia *Msvc) Parse(input io.Reader, targetFile string, totalLines int) (BlockMap, error) {
	par := &Parser{
		TargetFile: targetFile,
		TotalLines: totalLines,
		Verbose:    dia.Verbose,
	}
	return par.Parse(input)
}

// Gcc is a placeholder for the GCC/Clang `-S` dialect. The grammar is
// not yet designed; it reports every listing as empty rather than guess
// at attribution.
type Gcc struct{}

var _ Dialect = (*Gcc)(nil)

func (dia *Gcc) Parse(input io.Reader, targetFile string, totalLines int) (BlockMap, error) {
	return BlockMap{}, nil
}

// DialectByName returns the dialect for a profile's dialect name.
func DialectByName(name string, verbose bool) (dia Dialect, err error) {
	switch name {
	case "msvc":
		dia = &Msvc{Verbose: verbose}
	case "gcc":
		dia = &Gcc{}
	default:
		err = ErrDialectUnknown(name)
	}
	return
}
