/*
Package broker decouples the ingest pipeline from chunk placement.

The ingest side publishes chunk messages; a consumer on every worker reads
them back with at-least-once semantics. The production implementation
speaks AMQP to a RabbitMQ-compatible broker (durable queue, manual acks,
prefetch-bounded consumers); MemoryQueue provides the same contract
in-process for tests.
*/
package broker
