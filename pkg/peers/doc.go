/*
Package peers maintains cached gRPC connections to storage workers and
wraps the WorkerService RPCs behind typed helpers.
*/
package peers
