package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when the dependency subgraph is not a DAG.
	// The metadata carries the set of package names that could not be ordered.
	ErrCycleDetected = zerr.New("dependency cycle detected")

	// ErrLayeringInconsistency is returned when layer partitioning makes no
	// progress despite an acyclic graph. This is an internal defect, not a
	// user-facing configuration error.
	ErrLayeringInconsistency = zerr.New("layering made no progress on acyclic graph")

	// ErrBuildFailed is returned when one or more package build steps failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrDuplicatePackage is returned when two workspace members declare the
	// same package name.
	ErrDuplicatePackage = zerr.New("duplicate package name")

	// ErrPackageNotFound is returned when the start path does not contain a
	// package manifest or the named package is not a workspace member.
	ErrPackageNotFound = zerr.New("package not found in workspace")
)
