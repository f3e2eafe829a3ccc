package app

import "fmt"

const ServiceName = "academixstore-admin"

// Version, GitCommit and BuildTime are overridden with -ldflags -X at release
// build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo renders the build metadata as "<version> (<commit>, <time>)".
func BuildInfo() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildTime)
}
