// Package metrics records build statistics.
package metrics

import "time"

// Page results.
const (
	ResultWritten = "written"
	ResultFailed  = "failed"
)

// Recorder receives build statistics.
type Recorder interface {
	IncPage(result string)
	AddOutputBytes(n int)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) IncPage(string)                     {}
func (NoopRecorder) AddOutputBytes(int)                 {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
