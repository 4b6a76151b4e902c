package core

import "fmt"

// Handle is an opaque reference to one live entity slot, owned by the entity storage
// Layout: low 24 bits slot, high 8 bits generation
type Handle uint32

const (
	handleSlotBits = 24
	handleSlotMask = 1<<handleSlotBits - 1

	// MaxHandleSlot is the largest slot a handle can address
	MaxHandleSlot = handleSlotMask
)

// NewHandle packs a slot and generation into a handle
func NewHandle(slot uint32, generation uint8) Handle {
	return Handle(slot&handleSlotMask | uint32(generation)<<handleSlotBits)
}

// HandleFromSlot narrows a widened bucket payload back into a handle
func HandleFromSlot(v uint64) Handle {
	return Handle(uint32(v))
}

// Slot returns the storage slot
func (h Handle) Slot() uint32 { return uint32(h) & handleSlotMask }

// Generation returns the slot reuse counter
func (h Handle) Generation() uint8 { return uint8(uint32(h) >> handleSlotBits) }

// Key returns the 32-bit map key
func (h Handle) Key() uint32 { return uint32(h) }

// Widen returns the 64-bit bucket payload
func (h Handle) Widen() uint64 { return uint64(h) }

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Slot(), h.Generation())
}
