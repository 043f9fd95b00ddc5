package buildinfo

import "runtime/debug"

// Stamped by release builds:
//
//	go build -ldflags "-X github.com/stockd/stockd/internal/infra/buildinfo.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// A plain `go build` in a checkout embeds VCS metadata; use it to
// fill whatever ldflags left unset so every binary stays traceable.
func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" && s.Value != "" {
				Commit = s.Value
			}
		case "vcs.time":
			if BuildTime == "unknown" && s.Value != "" {
				BuildTime = s.Value
			}
		}
	}
}
