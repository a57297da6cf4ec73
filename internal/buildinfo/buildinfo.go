// Package buildinfo carries release metadata stamped in with -ldflags.
package buildinfo

// These values are injected via ldflags for release binaries.
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
)

// String returns the version line shown by "jj --version".
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" {
		v += " (" + Commit + ")"
	}
	return v
}
