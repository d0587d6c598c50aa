/*
Package chunkstore is the worker-side disk engine: one file per stored
chunk under the worker's storage root, keyed by fileId and chunkId.
*/
package chunkstore
