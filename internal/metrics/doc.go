// Package metrics records run metrics for wheelindex.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no caller needs a nil check:
//
//	gen := site.NewGenerator(lister, cfg) // NoopRecorder
//	gen.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A one-shot CI run has no scrape endpoint, so PrometheusRecorder can dump
// its registry to a node_exporter textfile with WriteTextfile.
package metrics
