// Package metrics records render-stage timings and request counts.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default so callers never nil-check; PrometheusRecorder backs the optional
// metrics listener.
package metrics

import "time"

// Recorder defines observability hooks for the render pipeline and the
// asset server.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRenderDuration(artifact string, d time.Duration)
	IncRequest(route string, status int)
}

// Artifact labels for ObserveRenderDuration.
const (
	ArtifactPage       = "page"
	ArtifactStylesheet = "stylesheet"
)

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)  {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncRequest(string, int)                      {}

var _ Recorder = NoopRecorder{}
