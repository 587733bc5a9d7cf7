package phash

import "bytes"

// probeResult carries the four outputs of a single probe walk: the matching
// slot (needle), the first expired/tombstoned slot seen (expired), the slot
// with the smallest expiry seen (lru), and the walk's stopping point (last) -
// either a never-written slot or the full-cycle terminator.
//
// Slot indices are used instead of pointers; noSlot marks "absent" the same
// way a nil pointer would in the original C.
type probeResult struct {
	needle  uint32
	expired uint32
	lru     uint32
	last    uint32

	hasNeedle  bool
	hasExpired bool
	hasLRU     bool
}

const noSlot = ^uint32(0)

func isEmptySlot(s *indexSlot) bool {
	return s.expiry == 0 && s.hash == 0
}

func matchKey(t *Table, s *indexSlot, hash uint64, key []byte) bool {
	if s.hash != hash {
		return false
	}
	cell := cellAt(t.data, t.tableSize, t.maxAssocBytes, s.assocOffset)
	return cellKeySize(cell) == uint32(len(key)) && bytes.Equal(cellKey(cell), key)
}

// findIndices walks the index starting at hash % tableSize, advancing by one
// slot per step and wrapping at the end, stopping on a match, on a
// never-written slot, or upon completing a full cycle back to the start.
//
// now == 0 disables expiry classification entirely (every expiry is >= 0),
// which is how Get asks for a read-only walk that never reports an expired
// candidate. The lru candidate is still tracked whatever now is; Get
// ignores it.
func findIndices(t *Table, hash uint64, key []byte, now int64) probeResult {
	first := hash % uint64(t.tableSize)
	last := uint32(first)

	var r probeResult
	r.needle, r.expired, r.lru = noSlot, noSlot, noSlot

	for {
		slot := slotAt(t.data, last)

		if matchKey(t, slot, hash, key) {
			r.needle = last
			r.hasNeedle = true
			break
		}
		if isEmptySlot(slot) {
			break
		}
		if !r.hasExpired && slot.expiry < now {
			r.expired = last
			r.hasExpired = true
		}
		if !r.hasLRU || slot.expiry < slotAt(t.data, r.lru).expiry {
			r.lru = last
			r.hasLRU = true
		}

		last++
		if last == t.tableSize {
			last = 0
		}
		if uint64(last) == first {
			break
		}
	}

	r.last = last
	return r
}
