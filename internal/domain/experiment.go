// Package domain defines the core domain models for the experiment viewer.
package domain

import "time"

// Artifact file names written by the pipeline into each experiment directory.
const (
	FinalContextFile  = "context_final.json"
	ResultsFile       = "results.json"
	StatisticsFile    = "statistics.json"
	ContextFilePrefix = "context_"
	DesignsDir        = "designs"
)

// StageRunPrefix is the directory-name prefix used by single-stage runs.
// Full runs use "<name>_<timestamp>", stage runs "stage_run_<stage>_<timestamp>".
const StageRunPrefix = "stage_run"

// ExperimentKind classifies an experiment directory.
type ExperimentKind string

const (
	KindFull     ExperimentKind = "full"
	KindStageRun ExperimentKind = "stage_run"
)

// SourceKind identifies which artifact a context was resolved from.
type SourceKind string

const (
	SourceFinalContext   SourceKind = "final_context"
	SourceResultsBundle  SourceKind = "results_bundle"
	SourcePartialContext SourceKind = "partial_context"
	SourceNone           SourceKind = "none"
)

// Experiment summarizes one experiment directory. It is built from a single
// directory listing at request time and never persisted.
type Experiment struct {
	ID                 string         `json:"id"`
	Kind               ExperimentKind `json:"kind"`
	HasStatistics      bool           `json:"has_statistics"`
	HasCompleteContext bool           `json:"has_complete_context"`
	HasResultsBundle   bool           `json:"has_results_bundle"`
	ArtifactFiles      []string       `json:"artifact_files"`
	ModifiedAt         time.Time      `json:"modified_at"`
}

// ExperimentDetail is the full view of one experiment: the summary plus the
// resolved (and normalized) context or results bundle, and the names of any
// subfolders (designs, wireframes, logs, ...) present in the directory.
type ExperimentDetail struct {
	Experiment
	Source     SourceKind       `json:"source"`
	Context    *ContextDocument `json:"context,omitempty"`
	Results    *ResultsBundle   `json:"results,omitempty"`
	Subfolders []string         `json:"subfolders"`
}
