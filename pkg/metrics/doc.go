/*
Package metrics defines the Prometheus collectors for the chunk pipeline
and a process-level health report.

All collectors are registered against the default registry at package
init and exposed through Handler. Components push their own health via
UpdateComponent; HealthHandler serves the aggregate as JSON.
*/
package metrics
