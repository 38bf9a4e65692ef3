package version

import (
	"errors"
	"runtime/debug"
)

var (
	// ErrNoBuildInfo is returned when the binary carries no build information.
	ErrNoBuildInfo = errors.New("fetching build info failed")

	// ErrEmptyBuildInfo is returned when the build information is empty.
	ErrEmptyBuildInfo = errors.New("build information is empty")
)

// Info is a summary of the build information of the running binary.
type Info struct {
	Path      string `yaml:"path"`
	Version   string `yaml:"version"`
	GoVersion string `yaml:"goVersion"`
	Revision  string `yaml:"revision,omitempty"`
	Modified  bool   `yaml:"modified,omitempty"`
}

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrNoBuildInfo
	}

	if bi == nil {
		return nil, ErrEmptyBuildInfo
	}

	return bi, nil
}

// Summary returns the summary of the build information.
func Summary() (Info, error) {
	bi, err := BuildInfo()
	if err != nil {
		return Info{}, err
	}

	return Summarize(bi), nil
}

// Summarize extracts the main module and VCS details from bi.
func Summarize(bi *debug.BuildInfo) Info {
	info := Info{
		Path:      bi.Main.Path,
		Version:   bi.Main.Version,
		GoVersion: bi.GoVersion,
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	return info
}
