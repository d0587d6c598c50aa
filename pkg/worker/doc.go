/*
Package worker runs a storage node: the WorkerService RPC surface for
storing and retrieving chunks, the chunk-queue consumer, the periodic
heartbeat to the scheduler and a metrics side listener.
*/
package worker
