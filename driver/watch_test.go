package driver

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asmlens/listing"
)

type recordSink struct {
	mu      sync.Mutex
	applied map[string][][]listing.Entry
	empty   int
	failed  []error
}

func (sink *recordSink) Apply(path string, entries []listing.Entry) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.applied == nil {
		sink.applied = make(map[string][][]listing.Entry)
	}
	sink.applied[path] = append(sink.applied[path], entries)
}

func (sink *recordSink) Empty(path string) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.empty += 1
}

func (sink *recordSink) Failed(path string, err error) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.failed = append(sink.failed, err)
}

func watcherFor(t *testing.T, sink Sink, run func(ctx context.Context, path string, command []string) ([]listing.Entry, error)) (wat *Watcher, path string) {
	t.Helper()

	path, err := filepath.Abs(filepath.Join(t.TempDir(), "main.c"))
	if err != nil {
		t.Fatal(err)
	}

	wat = &Watcher{
		Sink:     sink,
		Debounce: 10 * time.Millisecond,
		run:      run,
	}
	wat.targets = map[string]*target{
		path: {command: []string{"cl", "/c", path}},
	}

	return
}

func TestWatcherDebounce(t *testing.T) {
	assert := assert.New(t)

	var runs atomic.Int32
	sink := &recordSink{}
	wat, path := watcherFor(t, sink, func(ctx context.Context, path string, command []string) ([]listing.Entry, error) {
		runs.Add(1)
		return []listing.Entry{{SourceLine: 1}}, nil
	})
	defer wat.Close()

	// A burst of triggers coalesces into one correlation.
	for range 5 {
		wat.Trigger(context.Background(), path)
	}

	assert.Eventually(func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(int32(1), runs.Load())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(1, len(sink.applied[path]))
}

func TestWatcherStaleDropped(t *testing.T) {
	assert := assert.New(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var cancelled atomic.Bool

	sink := &recordSink{}
	first := []listing.Entry{{SourceLine: 1, AssemblyText: "stale"}}
	second := []listing.Entry{{SourceLine: 1, AssemblyText: "fresh"}}

	var calls atomic.Int32
	wat, path := watcherFor(t, sink, func(ctx context.Context, path string, command []string) ([]listing.Entry, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			cancelled.Store(ctx.Err() != nil)
			return first, nil
		}
		return second, nil
	})
	defer wat.Close()

	wat.launch(context.Background(), path)
	<-started

	// A second launch supersedes the first while it is still running.
	wat.launch(context.Background(), path)
	assert.Eventually(func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.applied[path]) == 1
	}, time.Second, 5*time.Millisecond)

	// The first job finishes late; its result must be discarded and its
	// context must have been cancelled.
	close(release)
	time.Sleep(50 * time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(1, len(sink.applied[path]))
	assert.Equal("fresh", sink.applied[path][0][0].AssemblyText)
	assert.True(cancelled.Load())
}

func TestWatcherOutcomes(t *testing.T) {
	assert := assert.New(t)

	errCompile := errors.New("compile failed")
	outcome := make(chan int, 1)

	sink := &recordSink{}
	wat, path := watcherFor(t, sink, func(ctx context.Context, path string, command []string) ([]listing.Entry, error) {
		switch <-outcome {
		case 0:
			return nil, nil // no assembly for this file
		case 1:
			return nil, errCompile
		default:
			return nil, context.Canceled
		}
	})
	defer wat.Close()

	for n := range 3 {
		outcome <- n
		wat.launch(context.Background(), path)
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.empty == 1 && len(sink.failed) == 1
	}, time.Second, 5*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(0, len(sink.applied))
	assert.ErrorIs(sink.failed[0], errCompile)
	// The context.Canceled outcome is dropped silently.
}

func TestWatcherUnregistered(t *testing.T) {
	assert := assert.New(t)

	sink := &recordSink{}
	wat, _ := watcherFor(t, sink, func(ctx context.Context, path string, command []string) ([]listing.Entry, error) {
		t.Error("run called for unregistered path")
		return nil, nil
	})
	defer wat.Close()

	wat.Trigger(context.Background(), filepath.Join(t.TempDir(), "other.c"))
	time.Sleep(50 * time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(0, len(sink.applied))
	assert.Equal(0, sink.empty)
}
