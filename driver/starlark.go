// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package driver

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// LoadProfiles executes a Starlark profile file and returns the
// profiles it defines appended to the builtin set. The file assigns a
// `profiles` list of dicts, for example:
//
//	profiles = [
//	    {
//	        "name": "icx",
//	        "command": ["icx", "icpx"],
//	        "strip": ["-o"],
//	        "listing": ["-S", "-o", "{listing}"],
//	        "dialect": "gcc",
//	    },
//	]
func LoadProfiles(path string) (profiles []Profile, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, path, nil, nil)
	if err != nil {
		return
	}

	profiles = append(profiles, Builtin...)

	value, ok := globals["profiles"]
	if !ok {
		err = ErrProfileList
		return
	}
	list, ok := value.(*starlark.List)
	if !ok {
		err = ErrProfileList
		return
	}

	for entry := range list.Elements() {
		dict, ok := entry.(*starlark.Dict)
		if !ok {
			err = ErrProfileEntry
			return
		}

		var pro Profile
		pro, err = profileOf(dict)
		if err != nil {
			return
		}
		profiles = append(profiles, pro)
	}

	return
}

// profileOf converts one Starlark dict into a Profile.
func profileOf(dict *starlark.Dict) (pro Profile, err error) {
	pro.Name, err = stringKey(dict, "name")
	if err != nil {
		return
	}
	if len(pro.Name) == 0 {
		err = ErrProfileName
		return
	}

	pro.Dialect, err = stringKey(dict, "dialect")
	if err != nil {
		return
	}
	if len(pro.Dialect) == 0 {
		err = ErrProfileDialect
		return
	}

	pro.Command, err = stringsKey(dict, "command")
	if err != nil {
		return
	}
	pro.Strip, err = stringsKey(dict, "strip")
	if err != nil {
		return
	}
	pro.Listing, err = stringsKey(dict, "listing")

	return
}

// stringKey fetches an optional string entry from a profile dict.
func stringKey(dict *starlark.Dict, key string) (value string, err error) {
	entry, ok, err := dict.Get(starlark.String(key))
	if err != nil || !ok {
		return
	}

	str, ok := entry.(starlark.String)
	if !ok {
		err = ErrProfileEntry
		return
	}
	value = string(str)

	return
}

// stringsKey fetches an optional string-list entry from a profile dict.
func stringsKey(dict *starlark.Dict, key string) (values []string, err error) {
	entry, ok, err := dict.Get(starlark.String(key))
	if err != nil || !ok {
		return
	}

	list, ok := entry.(*starlark.List)
	if !ok {
		err = ErrProfileEntry
		return
	}

	for element := range list.Elements() {
		str, ok := element.(starlark.String)
		if !ok {
			err = ErrProfileEntry
			return
		}
		values = append(values, string(str))
	}

	return
}
