package chip8

// Memory is the bounds checked 4KB address space.
type Memory struct {
	data [MemorySize]byte
}

// Read returns the byte at the given address.
func (m *Memory) Read(address int) (byte, error) {
	if address < 0 || address > MaxAddress {
		return 0, &MemoryBoundsError{Address: address}
	}
	return m.data[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address int, value byte) error {
	if address < 0 || address > MaxAddress {
		return &MemoryBoundsError{Address: address}
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big endian 16-bit word at the given address.
func (m *Memory) ReadWord(address int) (uint16, error) {
	hi, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	lo, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadBlock returns a copy of length bytes starting at the given address.
func (m *Memory) ReadBlock(address, length int) ([]byte, error) {
	if err := m.checkRange(address, length); err != nil {
		return nil, err
	}
	block := make([]byte, length)
	copy(block, m.data[address:address+length])
	return block, nil
}

// Load copies data into memory starting at the given address.
// Nothing is written if the data does not fit.
func (m *Memory) Load(address int, data []byte) error {
	if err := m.checkRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

func (m *Memory) checkRange(address, length int) error {
	if address < 0 || address > MaxAddress {
		return &MemoryBoundsError{Address: address}
	}
	if length > 0 && address+length-1 > MaxAddress {
		return &MemoryBoundsError{Address: address + length - 1}
	}
	return nil
}
