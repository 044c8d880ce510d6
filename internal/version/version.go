// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/dacolabs/formschema/internal/jschema"
)

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0", "0.1.0-alpha.1").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// Build describes the running binary and the documents it generates.
type Build struct {
	Version string
	Commit  string
	Date    string
	Go      string
	Draft   string
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		Version, Commit, Date = fill(info, Version, Commit, Date)
	}
}

// fill replaces values that were not set via ldflags with what the module
// build information carries. This works when installed via "go install module@version".
func fill(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "none" && len(setting.Value) >= 7 {
				commit = setting.Value[:7]
			}
		case "vcs.time":
			if date == "unknown" {
				date = setting.Value
			}
		}
	}
	return version, commit, date
}

// Current returns the build information of the running binary.
func Current() Build {
	return Build{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		Draft:   jschema.Draft07,
	}
}

func (b Build) String() string {
	return fmt.Sprintf("formschema version %s (commit: %s, built: %s, go: %s, draft: %s)",
		b.Version, b.Commit, b.Date, b.Go, b.Draft)
}

// Info returns formatted version information.
func Info() string {
	return Current().String()
}

// Short returns just the version string.
func Short() string {
	return Version
}
