package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
)

// Stage names used by the page and matrix pipelines.
const (
	StageFetch    = "fetch"
	StageOrganize = "organize"
	StageRender   = "render"
	StagePersist  = "persist"
	StageVerify   = "verify"
	StageMatrix   = "matrix"
)

// Recorder defines observability hooks for run and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	SetWheelsIndexed(n int)
	SetAssetsSkipped(n int)
	SetGroupsRendered(n int)
	SetMatrixEntries(platform string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) SetWheelsIndexed(int)                       {}
func (NoopRecorder) SetAssetsSkipped(int)                       {}
func (NoopRecorder) SetGroupsRendered(int)                      {}
func (NoopRecorder) SetMatrixEntries(string, int)               {}
