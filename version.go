package weave

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/weave-escrow.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

const release = "v0.1.0"

// Version returns the release of the swap daemon, followed by the commit it
// was built from when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
