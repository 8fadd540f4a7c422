package domain

// PackageRecord describes a single workspace member for one build run.
// Records are immutable once constructed; a fresh set is collected per run.
type PackageRecord struct {
	// Name is the unique package name within a discovery run.
	Name InternedString

	// Path is the package's directory on disk. The core treats it as opaque.
	Path string

	// DeclaredDeps lists the names of other workspace members this package
	// depends on. Names that are not part of the collected set reference
	// external packages and are ignored during graph construction.
	DeclaredDeps []InternedString

	// BuildScript is the shell command that builds this package.
	// Empty means the package declares no build step.
	BuildScript string

	// OutDir is the build-output location, relative to Path.
	OutDir string
}

// HasBuildStep reports whether the package declares a build step.
func (p *PackageRecord) HasBuildStep() bool {
	return p.BuildScript != ""
}

// BuildOutcome is the final per-package result of a build run.
type BuildOutcome string

const (
	// OutcomeBuilt indicates the package's build step ran and succeeded.
	OutcomeBuilt BuildOutcome = "built"
	// OutcomeSkippedNoBuildStep indicates the package declares no build step.
	OutcomeSkippedNoBuildStep BuildOutcome = "skipped-no-build-step"
	// OutcomeSkippedUnchanged indicates the package's output is current.
	OutcomeSkippedUnchanged BuildOutcome = "skipped-unchanged"
	// OutcomeFailed indicates the package's build step ran and failed.
	OutcomeFailed BuildOutcome = "failed"
)

// RunResult aggregates the per-package outcomes of one build run.
// Packages absent from Outcomes were never attempted.
type RunResult struct {
	Outcomes map[string]BuildOutcome `json:"outcomes"`
}
