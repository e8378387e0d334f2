// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ezrec/asmlens/listing"
)

// DefaultDebounce coalesces rapid successive save events.
const DefaultDebounce = 200 * time.Millisecond

// target is the per-file watch state: its compile command, the debounce
// timer, and the generation token of the newest correlation. Results
// from an older generation are stale and never applied.
type target struct {
	command    []string
	timer      *time.Timer
	generation int
	cancel     context.CancelFunc
}

// Watcher re-correlates source files as they change. Each file gets at
// most one correlation in flight: a new trigger cancels the previous
// job's context and bumps the generation token, so late results from
// superseded jobs are discarded instead of clobbering newer output.
type Watcher struct {
	Profiles []Profile       // Compiler profiles; nil selects Builtin.
	Sink     Sink            // Receives correlation outcomes.
	Debounce time.Duration   // Trigger coalescing window; 0 selects DefaultDebounce.
	Palette  listing.Palette // Display palette; nil selects the default.
	Verbose  bool

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	targets map[string]*target

	// run is the correlation entry point; tests replace it.
	run func(ctx context.Context, path string, command []string) ([]listing.Entry, error)
}

// Watch registers a source file and its compile command. The parent
// directory is watched rather than the file itself; editors replace
// files on save, which drops a direct file watch.
func (wat *Watcher) Watch(path string, command []string) (err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	wat.mu.Lock()
	defer wat.mu.Unlock()

	if wat.targets == nil {
		wat.targets = make(map[string]*target)
	}
	if wat.fsw == nil {
		wat.fsw, err = fsnotify.NewWatcher()
		if err != nil {
			return
		}
	}

	wat.targets[abs] = &target{command: command}
	err = wat.fsw.Add(filepath.Dir(abs))

	return
}

// Run services watch events until the context is cancelled.
func (wat *Watcher) Run(ctx context.Context) (err error) {
	wat.mu.Lock()
	fsw := wat.fsw
	wat.mu.Unlock()
	if fsw == nil {
		err = ErrNotWatching
		return
	}

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			wat.Trigger(ctx, event.Name)
		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Trigger schedules a correlation for path after the debounce window,
// restarting the window if one is already pending. Unregistered paths
// are ignored.
func (wat *Watcher) Trigger(ctx context.Context, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	wat.mu.Lock()
	defer wat.mu.Unlock()

	tgt, ok := wat.targets[abs]
	if !ok {
		return
	}

	debounce := wat.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	if tgt.timer != nil {
		tgt.timer.Reset(debounce)
		return
	}
	tgt.timer = time.AfterFunc(debounce, func() {
		wat.launch(ctx, abs)
	})
}

// launch starts a correlation for path, superseding any in flight.
func (wat *Watcher) launch(ctx context.Context, path string) {
	wat.mu.Lock()

	tgt, ok := wat.targets[path]
	if !ok {
		wat.mu.Unlock()
		return
	}
	tgt.timer = nil

	if tgt.cancel != nil {
		tgt.cancel()
	}
	tgt.generation += 1
	generation := tgt.generation
	command := tgt.command

	jobCtx, cancel := context.WithCancel(ctx)
	tgt.cancel = cancel

	run := wat.run
	if run == nil {
		run = wat.correlate
	}

	wat.mu.Unlock()

	go func() {
		entries, err := run(jobCtx, path, command)
		wat.deliver(path, generation, entries, err)
	}()
}

// correlate is the default run implementation.
func (wat *Watcher) correlate(ctx context.Context, path string, command []string) (entries []listing.Entry, err error) {
	profiles := wat.Profiles
	if profiles == nil {
		profiles = Builtin
	}

	pro, err := ProfileFor(profiles, command)
	if err != nil {
		return
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return
	}

	job := &Job{
		Profile: pro,
		Command: command,
		Source:  path,
		Palette: wat.Palette,
		Verbose: wat.Verbose,
	}
	entries, err = job.Run(ctx, string(text))

	return
}

// deliver applies a correlation outcome unless a newer trigger has
// superseded it.
func (wat *Watcher) deliver(path string, generation int, entries []listing.Entry, err error) {
	wat.mu.Lock()
	tgt, ok := wat.targets[path]
	stale := !ok || tgt.generation != generation
	wat.mu.Unlock()

	if stale || errors.Is(err, context.Canceled) {
		return
	}

	switch {
	case err != nil:
		wat.Sink.Failed(path, err)
	case len(entries) == 0:
		wat.Sink.Empty(path)
	default:
		wat.Sink.Apply(path, entries)
	}
}

// Close stops watching and releases the fsnotify handle.
func (wat *Watcher) Close() (err error) {
	wat.mu.Lock()
	defer wat.mu.Unlock()

	for _, tgt := range wat.targets {
		if tgt.timer != nil {
			tgt.timer.Stop()
		}
		if tgt.cancel != nil {
			tgt.cancel()
		}
	}

	if wat.fsw != nil {
		err = wat.fsw.Close()
		wat.fsw = nil
	}

	return
}
