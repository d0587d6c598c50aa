/*
Package scheduler runs the control-plane process: the HTTP ingress for
uploads and downloads, the SchedulerService RPC surface for heartbeats
and placement, and the periodic reaper that drops silent workers.
*/
package scheduler
