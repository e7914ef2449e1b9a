package ledger

// versionTag is bumped on releases
const versionTag = "v0.1.0-dev"

// GitCommit identifies the exact source a binary was built from. Set
// through the linker:
//   go build -ldflags "-X github.com/quorumnet/ledger.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version reports the release tag, with the commit when known
func Version() string {
	if GitCommit == "" {
		return versionTag
	}
	return versionTag + " " + GitCommit
}
