package spatial

import "github.com/rotisserie/eris"

// Invariant violations. These indicate a programming error in the caller or in the index itself.
var (
	ErrNullOverflowRef       = eris.New("overflow ref 0 is the null sentinel and cannot be freed")
	ErrOverflowRefOutOfRange = eris.New("overflow ref outside pool capacity")
	ErrLayoutMismatch        = eris.New("memory layout size differs from the fixed layout")
)
