package listing

import (
	"github.com/ezrec/asmlens/translate"
)

var f = translate.From

// ErrParseLineNumber indicates a line-number directive whose number
// failed integer parsing.
type ErrParseLineNumber string

func (err ErrParseLineNumber) Error() string {
	return f("'%v' is not a line number", string(err))
}

// ErrDialectUnknown indicates a profile naming a listing dialect that
// has no parser.
type ErrDialectUnknown string

func (err ErrDialectUnknown) Error() string {
	return f("dialect '%v' unknown", string(err))
}

// ErrListing indicates the location of a listing parse failure.
type ErrListing struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrListing) Error() string {
	return f("listing line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrListing) Unwrap() error {
	return err.Err
}
