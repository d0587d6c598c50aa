/*
Package types defines the core data structures used throughout granary.

It contains the records the control plane moves around: worker registry
entries, file directory rows, chunk placements and the broker chunk
message, plus the cluster-wide tuning constants (chunk size, liveness
timeout, heartbeat and reaper periods).

All other packages depend on types; types depends on nothing.
*/
package types
