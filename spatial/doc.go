// Package spatial implements a chunked grid index of entity handles for radius queries.
//
// World positions are floored to integer cells and mapped by power-of-two shifts to grid
// coordinates (one Bucket each) and chunk coordinates (one pooled Chunk of Buckets each).
// Buckets hold 15 handles inline and chain into an OverflowPool when they fill up. Chunks
// are drawn from a ChunkPool the first time an entity maps into them and returned the moment
// their last entity leaves.
//
// A Region is owned by one simulation and must not be shared between goroutines.
package spatial
