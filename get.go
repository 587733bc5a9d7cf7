package phash

import (
	"fmt"
	"os"
)

// Get looks up the entry for (hash, key). now is implicitly 0 for the
// underlying probe walk, so no slot is ever classified as expired here, and
// Get ignores the walk's lru candidate - Get is read-only with respect to
// expiration; only Put reclaims expired slots.
//
// newExpiry controls a side effect applied to the found slot before
// returning:
//   - negative: leave expiry untouched (a plain read)
//   - zero: tombstone the slot - the next Get for this key misses, and the
//     next Put either updates in place or reclaims the cell
//   - positive: overwrite expiry with newExpiry
//
// The returned slice is a zero-copy view into the mapping. It is valid
// until the next mutating call on this Table (any Put, or a Get with a
// non-negative newExpiry) and is invalidated entirely by Close.
func (t *Table) Get(hash uint64, key []byte, newExpiry int64) (value []byte, ok bool) {
	if hash == 0 {
		hash = 1
	}
	if uint32(len(key)) > t.maxAssocBytes-cellHeaderSize {
		// An argument error, distinct from a logical miss - diagnosed to
		// stderr and then reported the same way as a miss (§7: both are
		// "value_size -1", distinguished only by whether a diagnostic fires).
		fmt.Fprintf(os.Stderr, "phash: key of %d bytes exceeds max assoc bytes\n", len(key))
		return nil, false
	}

	r := findIndices(t, hash, key, 0)
	if !r.hasNeedle {
		return nil, false
	}

	slot := slotAt(t.data, r.needle)
	if slot.expiry == 0 {
		// The matched slot is a tombstone left by an earlier Get(..., 0) or by
		// a compacting Put: its hash and cell bytes are still intact, but §4.4
		// treats it as already gone. Put is the only operation that reclaims
		// a tombstoned slot.
		return nil, false
	}
	switch {
	case newExpiry < 0:
		// leave expiry untouched
	case newExpiry == 0:
		slot.expiry = 0
	default:
		slot.expiry = newExpiry
	}

	cell := cellAt(t.data, t.tableSize, t.maxAssocBytes, slot.assocOffset)
	return cellValue(cell), true
}
