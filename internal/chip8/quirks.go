package chip8

// Quirks selects between historically divergent instruction behaviors.
// The zero value matches most modern interpreters.
type Quirks struct {
	// ShiftUsesVY makes SHR and SHL read their source from Vy instead of Vx,
	// as the original COSMAC VIP interpreter did. The result is always
	// written to Vx.
	ShiftUsesVY bool

	// StoreClearsRegisters zeroes V0-Vx after LD [I], Vx has stored them.
	StoreClearsRegisters bool
}
