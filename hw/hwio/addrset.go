package hwio

const (
	numAddrs = 0x10000       // 16-bit addressing space
	wordSize = 64            // using 64-bit words
	numWords = numAddrs / 64 // 1024 words exactly
)

// AddrSet is a set of 16-bit addresses. Zero value is an empty set.
type AddrSet struct {
	words [numWords]uint64
	n     int
}

// Add adds addr to the set.
func (s *AddrSet) Add(addr uint16) {
	if !s.Has(addr) {
		s.words[addr/wordSize] |= 1 << (addr % wordSize)
		s.n++
	}
}

// Remove removes addr from the set.
func (s *AddrSet) Remove(addr uint16) {
	if s.Has(addr) {
		s.words[addr/wordSize] &^= 1 << (addr % wordSize)
		s.n--
	}
}

// Has reports whether addr is in the set.
func (s *AddrSet) Has(addr uint16) bool {
	return s.words[addr/wordSize]&(1<<(addr%wordSize)) != 0
}

// AddRange adds all addresses of the inclusive range [lo, hi].
func (s *AddrSet) AddRange(lo, hi uint16) {
	for a := uint32(lo); a <= uint32(hi); a++ {
		s.Add(uint16(a))
	}
}

// Len returns the number of addresses in the set.
func (s *AddrSet) Len() int { return s.n }

// Reset empties the set.
func (s *AddrSet) Reset() {
	*s = AddrSet{}
}

// Addrs returns the addresses in the set, in increasing order.
func (s *AddrSet) Addrs() []uint16 {
	addrs := make([]uint16, 0, s.n)
	for i, w := range s.words {
		for bit := 0; w != 0; bit++ {
			if w&1 != 0 {
				addrs = append(addrs, uint16(i*wordSize+bit))
			}
			w >>= 1
		}
	}
	return addrs
}
