package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	runDurations   int
	wheels         int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, stageResults: map[string]map[ResultLabel]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) ObserveRunDuration(time.Duration) { t.runDurations++ }
func (t *testRecorder) SetWheelsIndexed(n int)           { t.wheels = n }
func (t *testRecorder) SetAssetsSkipped(int)             {}
func (t *testRecorder) SetGroupsRendered(int)            {}
func (t *testRecorder) SetMatrixEntries(string, int)     {}

func TestRecorderImplementations(t *testing.T) {
	recorders := []Recorder{NoopRecorder{}, newTestRecorder(), NewPrometheusRecorder(nil)}
	for _, r := range recorders {
		r.ObserveStageDuration(StageFetch, time.Millisecond)
		r.IncStageResult(StageFetch, ResultSuccess)
		r.ObserveRunDuration(time.Second)
		r.SetWheelsIndexed(3)
	}

	tr := newTestRecorder()
	tr.ObserveStageDuration(StageRender, time.Millisecond)
	tr.IncStageResult(StageRender, ResultFatal)
	if tr.stageDurations[StageRender] != 1 || tr.stageResults[StageRender][ResultFatal] != 1 {
		t.Fatalf("unexpected test recorder state: %+v", tr)
	}
}
