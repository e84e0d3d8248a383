package font

import "sync"

// runeSet memoizes coverage answers with 4 bits per rune: checked,
// covered and warned. Blocks of 256 runes are allocated on first use.
//
// runeSet is safe for concurrent use.
type runeSet struct {
	mu     sync.RWMutex
	blocks map[uint32]*runeBlock
}

type runeBlock struct {
	bits [16]uint64
}

func newRuneSet() *runeSet {
	return &runeSet{blocks: make(map[uint32]*runeBlock)}
}

func runePos(r rune) (block uint32, word int, shift uint) {
	idx := (uint32(r) & 0xFF) * 4
	return uint32(r) >> 8, int(idx / 64), uint(idx % 64)
}

// lookup returns (covered, checked).
func (s *runeSet) lookup(r rune) (covered, checked bool) {
	blk, word, shift := runePos(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blocks[blk]
	if !ok {
		return false, false
	}
	w := b.bits[word] >> shift
	return w&2 != 0, w&1 != 0
}

func (s *runeSet) store(r rune, covered bool) {
	bits := uint64(1)
	if covered {
		bits |= 2
	}
	s.set(r, bits)
}

// warn marks r as reported missing and returns true the first time.
func (s *runeSet) warn(r rune) bool {
	return s.set(r, 4)&4 == 0
}

// set ors bits into the slot of r and returns the previous slot.
func (s *runeSet) set(r rune, bits uint64) uint64 {
	blk, word, shift := runePos(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blocks[blk]
	if !ok {
		b = &runeBlock{}
		s.blocks[blk] = b
	}
	old := b.bits[word] >> shift & 0xF
	b.bits[word] |= bits << shift
	return old
}
