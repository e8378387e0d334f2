// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package driver

import (
	"path/filepath"
	"slices"
	"strings"
)

// ListingSlot is the placeholder a profile's listing flags use for the
// listing output path.
const ListingSlot = "{listing}"

// Profile describes one compiler family: which commands it matches, how
// to strip its object-output flags, which flags request a listing, and
// which listing dialect to parse the result with.
type Profile struct {
	Name    string   // Profile name.
	Command []string // Compiler basenames this profile matches.
	Strip   []string // Flag prefixes removed from the compile command.
	Listing []string // Flags appended to request a listing; ListingSlot expands to the listing path.
	Dialect string   // Listing dialect name ("msvc", "gcc").
}

// Builtin holds the stock compiler profiles.
var Builtin = []Profile{
	{
		Name:    "cl",
		Command: []string{"cl", "cl.exe"},
		Strip:   []string{"/Fo", "-Fo", "/Fa", "-Fa", "/FA", "-FA"},
		Listing: []string{"/FAs", "/Fa" + ListingSlot},
		Dialect: "msvc",
	},
	{
		Name:    "gcc",
		Command: []string{"gcc", "g++", "cc", "c++", "clang", "clang++"},
		Strip:   []string{"-o"},
		Listing: []string{"-S", "-o", ListingSlot},
		Dialect: "gcc",
	},
}

// Matches reports whether this profile handles the given compiler
// executable. Matching is by basename, case-folded, ".exe" ignored.
func (pro *Profile) Matches(compiler string) bool {
	base := strings.ToLower(filepath.Base(compiler))
	base = strings.TrimSuffix(base, ".exe")

	return slices.ContainsFunc(pro.Command, func(name string) bool {
		return strings.TrimSuffix(name, ".exe") == base
	})
}

// Rewrite turns compile arguments into listing-producing arguments:
// object-output and stale listing flags are stripped, and the profile's
// listing flags are appended with listingPath substituted.
func (pro *Profile) Rewrite(args []string, listingPath string) (rewritten []string) {
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if slices.Contains(pro.Strip, arg) {
			// Exact match on a flag that carries its value separately.
			skip = true
			continue
		}
		if slices.ContainsFunc(pro.Strip, func(prefix string) bool {
			return strings.HasPrefix(arg, prefix)
		}) {
			continue
		}
		rewritten = append(rewritten, arg)
	}

	for _, flag := range pro.Listing {
		rewritten = append(rewritten, strings.ReplaceAll(flag, ListingSlot, listingPath))
	}

	return
}

// ProfileFor finds the profile matching a compile command.
func ProfileFor(profiles []Profile, command []string) (pro *Profile, err error) {
	if len(command) == 0 {
		err = ErrCommandEmpty
		return
	}

	for n := range profiles {
		if profiles[n].Matches(command[0]) {
			pro = &profiles[n]
			return
		}
	}

	err = ErrProfileUnknown(command[0])
	return
}
