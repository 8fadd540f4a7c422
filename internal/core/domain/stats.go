package domain

import "time"

// TreeStats summarizes the filesystem probe of one directory tree.
// A missing tree is represented by zero Files and zero timestamps.
type TreeStats struct {
	// Files is the number of regular files found.
	Files int
	// Newest is the maximum modification timestamp among the files.
	Newest time.Time
	// Oldest is the minimum modification timestamp among the files.
	Oldest time.Time
}
