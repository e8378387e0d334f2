package driver

import (
	"errors"

	"github.com/ezrec/asmlens/translate"
)

var f = translate.From

var (
	// Profile errors
	ErrProfileList    = errors.New(f("profile file must define a 'profiles' list"))
	ErrProfileEntry   = errors.New(f("profile entry must be a dict of strings and string lists"))
	ErrProfileName    = errors.New(f("profile entry missing 'name'"))
	ErrProfileDialect = errors.New(f("profile entry missing 'dialect'"))

	// Job errors
	ErrCommandEmpty = errors.New(f("compile command empty"))
	ErrNoListing    = errors.New(f("compiler produced no listing file"))

	// Watcher errors
	ErrNotWatching = errors.New(f("no files registered to watch"))
)

// ErrProfileUnknown indicates a compile command no profile matches.
type ErrProfileUnknown string

func (err ErrProfileUnknown) Error() string {
	return f("no profile for compiler '%v'", string(err))
}

// ErrCompile indicates a compiler invocation that exited non-zero. The
// correlator never runs on its listing, if any.
type ErrCompile struct {
	Command []string
	Output  string
	Err     error
}

func (err *ErrCompile) Error() string {
	return f("compile %v: %v", err.Command, err.Err)
}

func (err *ErrCompile) Unwrap() error {
	return err.Err
}
