/*
Package metadata is the typed gateway over granary's persistent metadata:
the file directory (one row per uploaded file) and the chunk-placement
table (one immutable row per placed chunk, composite-keyed by fileId and
chunkId).

The shipped implementation is BoltDB-backed. InsertPlacement enforces
composite-key uniqueness inside a single write transaction, which is what
makes placement decisions race-free: at most one writer wins per
(fileId, chunkId), and the loser sees ErrDuplicateKey.
*/
package metadata
