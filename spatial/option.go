package spatial

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/vmath"
)

// ChunkEvent identifies a chunk lifecycle transition
type ChunkEvent uint8

const (
	ChunkBorn ChunkEvent = iota
	ChunkFreed
)

func (e ChunkEvent) String() string {
	switch e {
	case ChunkBorn:
		return "born"
	case ChunkFreed:
		return "freed"
	default:
		return "unknown"
	}
}

// ChunkObserver is called synchronously when a chunk becomes active or is returned to the pool
type ChunkObserver func(ev ChunkEvent, coord vmath.Int2)

// Option configures a Region at construction
type Option func(*Region)

// WithLogger sets the logger used for debug traces and invariant reports
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Region) {
		r.logger = logger
	}
}

// WithInitSizeKB sets the chunk memory allocated up front; the overflow pool is sized at 1/8 of it
func WithInitSizeKB(kb int) Option {
	return func(r *Region) {
		r.initSizeKB = kb
	}
}

// WithChunkPageKB sets the size of each chunk block allocated when the pool runs dry
func WithChunkPageKB(kb int) Option {
	return func(r *Region) {
		r.chunkPageKB = kb
	}
}

// WithChunkObserver registers a callback for chunk birth and death
func WithChunkObserver(fn ChunkObserver) Option {
	return func(r *Region) {
		r.observer = fn
	}
}

// MultiObserver fans one event out to several observers in order; nil entries are skipped
func MultiObserver(fns ...ChunkObserver) ChunkObserver {
	return func(ev ChunkEvent, coord vmath.Int2) {
		for _, fn := range fns {
			if fn != nil {
				fn(ev, coord)
			}
		}
	}
}
