package coursesync

import (
	"runtime/debug"
	"strings"
)

const (
	Name        = "coursesync"
	Description = "Aisystant course extraction and incremental LLM translation"
	Version     = "0.3.0"
)

// Overridden at link time:
//
//	go build -ldflags "-X github.com/aisystant/coursesync.GitCommit=$(git rev-parse HEAD)"
var (
	GitCommit = ""
	BuildDate = ""
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

// Build returns the link-time values, falling back to the VCS stamp the Go
// toolchain embeds in module builds.
func Build() BuildInfo {
	b := BuildInfo{Version: Version, Commit: GitCommit, Date: BuildDate}
	if b.Commit != "" {
		return b
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				b.Commit = s.Value
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Dirty = s.Value == "true"
			}
		}
	}
	return b
}

// String renders "0.3.0+abc1234" or "0.3.0+abc1234.dirty".
func (b BuildInfo) String() string {
	if b.Commit == "" {
		return b.Version
	}
	var sb strings.Builder
	sb.WriteString(b.Version + "+" + shortCommit(b.Commit))
	if b.Dirty {
		sb.WriteString(".dirty")
	}
	return sb.String()
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

// UserAgent is sent with every content service and LLM request.
func UserAgent() string {
	return Name + "/" + Version
}
