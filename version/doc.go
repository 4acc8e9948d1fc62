// Package version reports build information for `ace --version` and the
// HTTP /info endpoint.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/ignitor/version.Version=1.2.0"
//
// Unset values fall back to the VCS stamps embedded by the Go toolchain.
package version
