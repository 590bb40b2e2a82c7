package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"golang.org/x/mod/modfile"
)

// versionString reports the module path and Go directive from this
// binary's own go.mod when run from a source checkout (the common
// case during development), falling back to the build info embedded
// by the Go toolchain in a compiled binary otherwise.
func versionString() string {
	if path, goVersion, ok := readGoMod(); ok {
		return fmt.Sprintf("%s (go %s, built with %s)", path, goVersion, runtime.Version())
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return fmt.Sprintf("%s %s (built with %s)", info.Main.Path, info.Main.Version, runtime.Version())
	}
	return "wordgraph-cli (unknown version)"
}

// readGoMod walks upward from the working directory looking for a
// go.mod, parsing just enough of it (via x/mod/modfile, the same
// parser `go` itself uses) to report the module path and Go version
// directive.
func readGoMod() (modulePath, goVersion string, ok bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", "", false
	}

	for {
		candidate := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(candidate)
		if err == nil {
			f, err := modfile.Parse(candidate, data, nil)
			if err != nil || f.Module == nil {
				return "", "", false
			}
			gv := ""
			if f.Go != nil {
				gv = f.Go.Version
			}
			return f.Module.Mod.Path, gv, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}
		dir = parent
	}
}
