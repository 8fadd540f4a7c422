// Package build carries version information stamped at link time.
package build

// Version is the application version, overridable via -ldflags.
var Version = "dev"
