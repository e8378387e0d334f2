// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ezrec/asmlens/driver"
	"github.com/ezrec/asmlens/render"
)

func main() {
	var profiles string
	var watch bool
	var mono bool
	var verbose bool

	flag.StringVar(&profiles, "p", "", "Starlark compiler profile file")
	flag.BoolVar(&watch, "w", false, "Watch the source file and re-correlate on change")
	flag.BoolVar(&mono, "n", false, "Disable color output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	// asmlens [-flags] source.c compiler args...
	if flag.NArg() < 2 {
		log.Fatalf("%v: usage: asmlens [-p profiles.star] [-w] [-n] [-v] <source> <compile command...>", os.Args[0])
	}
	source := flag.Arg(0)
	command := flag.Args()[1:]

	known := driver.Builtin
	if len(profiles) != 0 {
		var err error
		known, err = driver.LoadProfiles(profiles)
		if err != nil {
			log.Fatalf("%v: %v", profiles, err)
		}
	}

	sink := &render.ConsoleSink{
		Out:      os.Stdout,
		Renderer: render.Renderer{Color: !mono},
	}

	if !watch {
		entries, _, err := driver.Correlate(context.Background(), known, command, source, verbose)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		if len(entries) == 0 {
			sink.Empty(source)
			return
		}
		sink.Apply(source, entries)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wat := &driver.Watcher{
		Profiles: known,
		Sink:     sink,
		Verbose:  verbose,
	}
	defer wat.Close()

	err := wat.Watch(source, command)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	// Initial correlation, then follow changes.
	wat.Trigger(ctx, source)
	err = wat.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
