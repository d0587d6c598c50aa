/*
Package registry implements the scheduler's in-memory worker directory.

Workers appear on their first heartbeat, stay active while heartbeats keep
arriving within the liveness timeout, and are purged by a periodic reaper
once stale. The directory is the placement oracle's source of candidates.
*/
package registry
