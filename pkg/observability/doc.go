/*
Package observability translates engine lifecycle events into prometheus
metrics. Create a Metrics with a registry, pass Metrics.Hooks() to the
engine via requery.WithLifecycleHooks and serve the registry with promhttp.
*/
package observability
