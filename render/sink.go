package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/ezrec/asmlens/listing"
	"github.com/ezrec/asmlens/translate"
)

var f = translate.From

// ConsoleSink prints correlation outcomes to a writer. It satisfies the
// driver's Sink interface and serializes output from concurrent
// correlations.
type ConsoleSink struct {
	Out      io.Writer
	Renderer Renderer

	mu sync.Mutex
}

// Apply renders the correlated entries for a source file.
func (sink *ConsoleSink) Apply(path string, entries []listing.Entry) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	_ = sink.Renderer.Write(sink.Out, path, entries)
}

// Empty reports the informational "no assembly" outcome.
func (sink *ConsoleSink) Empty(path string) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	fmt.Fprintln(sink.Out, f("%v: no assembly produced for this file", path))
}

// Failed reports a compile or parse failure.
func (sink *ConsoleSink) Failed(path string, err error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()

	fmt.Fprintln(sink.Out, f("%v: %v", path, err))
}
