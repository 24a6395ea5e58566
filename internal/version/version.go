// Package version reports the server's build identity.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X bennypowers.dev/svls/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" when built from a modified tree
)

// Info describes a build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Tag       string `json:"tag"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"goVersion"`
}

// Get collects build identity from ldflags, falling back to the VCS stamp
// the Go toolchain embeds in the binary.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    GitCommit,
		Tag:       GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "unknown" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "unknown" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				if GitDirty == "" {
					info.Dirty = s.Value == "true"
				}
			}
		}
	}
	if info.Version == "dev" && info.Tag != "unknown" {
		info.Version = tagVersion(info.Tag, info.Commit, info.Dirty)
	}
	return info
}

// tagVersion builds a version from a git tag, appending the short commit
// unless the tag already names it.
func tagVersion(tag, commit string, dirty bool) string {
	v := tag
	if short := shortCommit(commit); short != "" && !strings.HasSuffix(tag, short) {
		v = fmt.Sprintf("%s-%s", tag, short)
	}
	if dirty {
		v += "-dirty"
	}
	return v
}

func shortCommit(commit string) string {
	if commit == "unknown" {
		return ""
	}
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// String is the version, with the short commit when known.
func (i Info) String() string {
	if short := shortCommit(i.Commit); short != "" && !strings.Contains(i.Version, short) {
		return fmt.Sprintf("%s (commit: %s)", i.Version, short)
	}
	return i.Version
}
