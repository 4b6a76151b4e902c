package parameter

// Bucket layout
const (
	// BucketCapacity is the number of handle slots stored inline in a bucket
	// 15 * 8 (Slots) + 4 (Count) + 4 (Next) = 128 bytes (2 cache lines)
	BucketCapacity = 15

	// BucketMemSize is the fixed binary size of one bucket
	BucketMemSize = (BucketCapacity + 1) * 8
)

// Coordinate spaces: world cell >> WidthBit = grid coord, grid coord >> GridScalerBit = chunk coord
const (
	// WidthBit is the log2 of the grid cell width in world units
	WidthBit = 1

	// CellWidth is the grid cell width in world units
	CellWidth = 1 << WidthBit

	// GridScalerBit is the log2 of the chunk span in grid cells
	GridScalerBit = 2

	// ChunkSpan is the number of buckets along one chunk axis
	ChunkSpan = 1 << GridScalerBit

	// ChunkMask extracts the bucket offset inside a chunk from a grid coordinate
	ChunkMask = ChunkSpan - 1

	// ChunkWidthBit is the log2 of the chunk width in world units
	ChunkWidthBit = WidthBit + GridScalerBit

	// ChunkMemSize is the fixed binary size of one chunk
	ChunkMemSize = ChunkSpan * ChunkSpan * BucketMemSize
)

// Migration guard
const (
	// HysteresisMargin is the per-axis distance in world units from the previous cell centre
	// an entity must exceed before it is moved to another bucket
	HysteresisMargin = float64(CellWidth)

	// HysteresisLagCells is how many cells a registered bucket can trail the true cell;
	// radius queries widen their window by this amount
	HysteresisLagCells = 1
)

// Pool sizing
const (
	// DefaultInitSizeKB is the chunk memory allocated up front
	DefaultInitSizeKB = 1024

	// MinInitSizeKB is the floor applied to the configured initial size
	MinInitSizeKB = 128

	// DefaultChunkPageKB is the size of each chunk block allocated on exhaustion (128 chunks)
	DefaultChunkPageKB = 256

	// OverflowBytesPerKB sizes the overflow pool at 1/8 of the initial chunk memory
	OverflowBytesPerKB = 128

	// MinOverflowCapacity keeps the sentinel plus at least one usable bucket
	MinOverflowCapacity = 2
)

// Query window
const (
	// MaxQuerySpan bounds the query half-width in grid cells; it already covers the whole int32 grid range
	MaxQuerySpan = int64(1) << 31
)
