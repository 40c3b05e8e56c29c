/*
Package observability turns build hooks into Prometheus metrics.

Metrics.Hooks returns a domain.BuildHooks that can be merged with any other
hooks passed to graft.WithHooks. The collected series can be served by an HTTP
handler over Registry, or dumped to a node_exporter textfile with WriteTextfile
after a one-shot CLI build.
*/
package observability
