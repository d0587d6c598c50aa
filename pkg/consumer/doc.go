/*
Package consumer drains the chunk queue on each worker: it decodes chunk
messages, asks the scheduler's placement oracle for the owning worker,
and either stores the chunk locally or forwards it to the assigned peer.

Acking is deferred until the store succeeds, so the queue provides
at-least-once delivery; malformed payloads are acked and dropped rather
than redelivered forever.
*/
package consumer
