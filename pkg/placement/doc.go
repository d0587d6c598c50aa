/*
Package placement implements the worker-placement oracle.

The oracle answers one question: which worker owns chunk (fileId, chunkId)?
For a new chunk it picks the next active worker round-robin and persists
the decision; for a chunk it has seen before it refuses to re-decide and
hands back the recorded placement. That refusal is what makes at-least-once
broker delivery safe end to end.
*/
package placement
