// Package version reports build information stamped into the binaries
package version

// BuildInfo describes one build of a confmatrix binary
type BuildInfo struct {
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Info returns the build information for service
// version, commit and date are stamped with
//
//	-ldflags "-X confmatrix/internal/core/version.version=v0.1.0 -X confmatrix/internal/core/version.commit=abcd"
func Info(service string) BuildInfo {
	if service == "" {
		service = "confmatrix"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders the build info on one line
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
