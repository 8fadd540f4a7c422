package ports

// Settings holds the workspace-level tool configuration. It is resolved once
// per invocation, before any workspace discovery.
type Settings struct {
	// Concurrency is the maximum number of build steps in flight.
	// Zero means "use the number of available processing units".
	Concurrency int

	// BuildScript is the manifest script name treated as the build step.
	BuildScript string

	// Excludes lists directory names the incremental probe skips when
	// scanning package sources.
	Excludes []string

	// ReportPath, when non-empty, is where the JSON run report is written.
	ReportPath string

	// Output selects the progress renderer ("linear" or "progress").
	Output string
}
