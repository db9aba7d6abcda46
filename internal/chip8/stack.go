package chip8

// Stack is the fixed depth return address stack.
type Stack struct {
	entries [StackDepth]uint16
	pointer int // one past the top entry
}

// Push adds an address on top of the stack.
func (s *Stack) Push(address uint16) error {
	if s.pointer >= StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.pointer] = address
	s.pointer++
	return nil
}

// Pop removes and returns the top address of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrStackUnderflow
	}
	s.pointer--
	address := s.entries[s.pointer]
	s.entries[s.pointer] = 0
	return address, nil
}

// Peek returns the top address without removing it.
func (s *Stack) Peek() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrStackUnderflow
	}
	return s.entries[s.pointer-1], nil
}

// Len returns the number of stored addresses.
func (s *Stack) Len() int {
	return s.pointer
}

// IsEmpty returns whether the stack holds no addresses.
func (s *Stack) IsEmpty() bool {
	return s.pointer == 0
}

// IsFull returns whether another push would overflow.
func (s *Stack) IsFull() bool {
	return s.pointer == StackDepth
}
