/*
Package observability provides Prometheus instrumentation for value graphs.

Metrics subscribes to a valuenode.Bus and counts graph events by type. Sample
tables produced by time sampling can be observed to track how many change
points each node yields.
*/
package observability
