// Package proto contains the generated gRPC bindings for the granary
// control plane: SchedulerService (heartbeats and chunk placement) and
// WorkerService (chunk storage and retrieval).
//
// The bindings are committed so the module builds without protoc.
//
//go:generate protoc --go_out=plugins=grpc:. --go_opt=paths=source_relative granary.proto
package proto
