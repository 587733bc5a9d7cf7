package phash

// putDecision records which branch of the decision table a Put took
// (insert vs. compacting update vs. eviction), the way the original's
// LOG(" [write expired]") / LOG(" [append]") / ... trace did. The unexported
// put returns it alongside the result code; Put discards it.
type putDecision int

const (
	decisionWriteExpired putDecision = iota
	decisionAppend
	decisionEvictLRU
	decisionCompactUpdate
	decisionUpdateInPlace
)

// Put inserts or updates the entry for (hash, key). A supplied hash of 0 is
// remapped to 1. now is compared against each candidate slot's expiry to
// decide whether that slot's prior occupant (if any) is reclaimable.
//
// Returns 0 if this was an insertion (into an expired slot, a never-written
// slot, or by evicting the least-recently-valid slot), or 1 if an existing
// entry for this key was updated (in place, or by compacting it into an
// earlier expired slot).
func (t *Table) Put(hash uint64, key, value []byte, expiry, now int64) (int, error) {
	if hash == 0 {
		hash = 1
	}
	if uint32(len(key))+uint32(len(value)) > t.maxAssocBytes-cellHeaderSize {
		return -1, ErrKeyValueTooLarge
	}

	_, code, err := t.put(hash, key, value, expiry, now)
	return code, err
}

func (t *Table) put(hash uint64, key, value []byte, expiry, now int64) (putDecision, int, error) {
	r := findIndices(t, hash, key, now)

	if !r.hasNeedle {
		switch {
		case r.hasExpired:
			t.writeAssoc(r.expired, hash, expiry, key, value)
			return decisionWriteExpired, 0, nil
		case isEmptySlot(slotAt(t.data, r.last)):
			if err := t.appendAssoc(r.last, hash, expiry, key, value); err != nil {
				return decisionAppend, -1, err
			}
			return decisionAppend, 0, nil
		default:
			t.writeAssoc(r.lru, hash, expiry, key, value)
			return decisionEvictLRU, 0, nil
		}
	}

	if r.hasExpired {
		slotAt(t.data, r.needle).expiry = 0 // tombstone: the entry moved to `expired`
		t.writeAssoc(r.expired, hash, expiry, key, value)
		return decisionCompactUpdate, 1, nil
	}

	t.updateAssoc(r.needle, expiry, value)
	return decisionUpdateInPlace, 1, nil
}

// writeAssoc writes a brand-new entry into slot i, reusing whatever payload
// cell that slot's assoc_offset already names (a pre-allocated cell from an
// expired or evicted occupant).
func (t *Table) writeAssoc(i uint32, hash uint64, expiry int64, key, value []byte) {
	slot := slotAt(t.data, i)
	slot.hash = hash
	slot.expiry = expiry
	cell := cellAt(t.data, t.tableSize, t.maxAssocBytes, slot.assocOffset)
	writeCell(cell, key, value)
}

// updateAssoc rewrites expiry and value in place within the payload cell a
// matching slot already points to; the key and assoc_offset are untouched.
func (t *Table) updateAssoc(i uint32, expiry int64, value []byte) {
	slot := slotAt(t.data, i)
	slot.expiry = expiry
	cell := cellAt(t.data, t.tableSize, t.maxAssocBytes, slot.assocOffset)
	writeCellValue(cell, value)
}

// appendAssoc allocates a brand-new payload cell at next_free_assoc and
// points slot i at it. This is the only code path that ever advances
// next_free_assoc.
func (t *Table) appendAssoc(i uint32, hash uint64, expiry int64, key, value []byte) error {
	h := t.header()
	offset := h.nextFreeAssoc
	if offset+uint64(t.maxAssocBytes) > uint64(t.maxAssocBytes)*uint64(t.tableSize) {
		return ErrTableFull
	}
	h.nextFreeAssoc += uint64(t.maxAssocBytes)

	slot := slotAt(t.data, i)
	slot.assocOffset = offset
	slot.hash = hash
	slot.expiry = expiry
	cell := cellAt(t.data, t.tableSize, t.maxAssocBytes, offset)
	writeCell(cell, key, value)
	return nil
}
