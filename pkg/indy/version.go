package indy

var (
	Version        = "v0.0.0-in-progress"
	LibindyVersion = "1.16.0"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the libindy release the command catalogue was
// written against.
func UpstreamVersion() string {
	return LibindyVersion
}
