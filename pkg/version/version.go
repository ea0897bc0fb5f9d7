// Package version is stamped at build time:
//
//	go build -ldflags "-X github.com/jeanpaul/sagepkm/pkg/version.Version=v1.2.0 -X github.com/jeanpaul/sagepkm/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version = "dev"
	Commit  = "none"
)

// String returns "version (commit)".
func String() string {
	return Version + " (" + Commit + ")"
}
