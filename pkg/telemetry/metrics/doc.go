// Package metrics implements Prometheus metrics for the diary server.
//
// The Collector owns a private registry and the metric instances the server
// records into. Metrics are exposed on a dedicated operator listener via
// promhttp; the diary protocol itself never serves them.
package metrics
