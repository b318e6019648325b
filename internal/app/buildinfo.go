package app

import (
	"log/slog"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/healthscript/healthscript-backend/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

type Build struct {
	Version     string
	Commit      string
	CommitShort string
	Time        string
	Modified    string
}

// UserAgent is sent by the API client and CLI.
func (b Build) UserAgent(product string) string {
	return product + "/" + b.Version
}

func (b Build) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", b.Version),
		slog.String("commit", b.CommitShort),
		slog.String("time", b.Time),
		slog.String("modified", b.Modified),
	)
}

type vcsSettings struct {
	moduleVersion string
	revision      string
	time          string
	modified      string
}

func CurrentBuild() Build {
	var vcs vcsSettings
	if info, ok := debug.ReadBuildInfo(); ok {
		vcs.moduleVersion = strings.TrimSpace(info.Main.Version)
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				vcs.revision = strings.TrimSpace(setting.Value)
			case "vcs.time":
				vcs.time = strings.TrimSpace(setting.Value)
			case "vcs.modified":
				vcs.modified = strings.TrimSpace(setting.Value)
			}
		}
	}
	return resolveBuild(strings.TrimSpace(Version), strings.TrimSpace(Commit), strings.TrimSpace(BuildTime), vcs)
}

// resolveBuild prefers linker-provided values and falls back to the VCS
// stamp the go tool embeds.
func resolveBuild(version, commit, buildTime string, vcs vcsSettings) Build {
	if version == "" || version == "dev" {
		version = "dev"
		if vcs.moduleVersion != "" && vcs.moduleVersion != "(devel)" {
			version = vcs.moduleVersion
		}
	}
	b := Build{
		Version:  version,
		Commit:   firstNonEmpty(commit, vcs.revision, "unknown"),
		Time:     firstNonEmpty(buildTime, vcs.time, "unknown"),
		Modified: firstNonEmpty(vcs.modified, "unknown"),
	}
	b.CommitShort = b.Commit
	if len(b.CommitShort) > 12 {
		b.CommitShort = b.CommitShort[:12]
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
