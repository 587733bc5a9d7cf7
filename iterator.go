package phash

// Iterator walks every live (non-tombstoned) index slot in index order. It
// is a read-only traversal that does not coexist with concurrent mutation
// of the table.
//
//	for it := t.Begin(); it != t.End(); it = t.Advance(it) {
//		hash, expiry, offset := t.IteratorHash(it), t.IteratorExpiry(it), t.IteratorAssocOffset(it)
//		key, value := t.IteratorKey(it), t.IteratorValue(it)
//	}
//
// Iterator is a slot index rather than a pointer; t.End() (== table_size) is
// the one-past-the-last sentinel, mirroring the original's "address of the
// payload base" terminator - advance and termination both collapse to a
// single comparison.
type Iterator uint32

// Begin returns an iterator at the first live slot, or End() if the table
// has no live entries.
func (t *Table) Begin() Iterator {
	var i uint32
	for i < t.tableSize && slotAt(t.data, i).expiry == 0 {
		i++
	}
	return Iterator(i)
}

// End returns the one-past-the-last iterator value.
func (t *Table) End() Iterator {
	return Iterator(t.tableSize)
}

// Advance moves to the next live slot after it, or End() if none remains.
func (t *Table) Advance(it Iterator) Iterator {
	i := uint32(it) + 1
	for i < t.tableSize && slotAt(t.data, i).expiry == 0 {
		i++
	}
	return Iterator(i)
}

func (t *Table) slotForIterator(it Iterator) *indexSlot {
	return slotAt(t.data, uint32(it))
}

func (t *Table) cellForIterator(it Iterator) []byte {
	slot := t.slotForIterator(it)
	return cellAt(t.data, t.tableSize, t.maxAssocBytes, slot.assocOffset)
}

// IteratorHash returns the slot's hash.
func (t *Table) IteratorHash(it Iterator) uint64 {
	return t.slotForIterator(it).hash
}

// IteratorExpiry returns the slot's expiry.
func (t *Table) IteratorExpiry(it Iterator) int64 {
	return t.slotForIterator(it).expiry
}

// IteratorAssocOffset returns the byte offset of the slot's payload cell
// within the payload arena, in bytes (divide by GetMaxAssocBytes for the
// cell index).
func (t *Table) IteratorAssocOffset(it Iterator) uint64 {
	return t.slotForIterator(it).assocOffset
}

// IteratorKeySize returns the slot's key size.
func (t *Table) IteratorKeySize(it Iterator) int {
	return int(cellKeySize(t.cellForIterator(it)))
}

// IteratorValueSize returns the slot's value size.
func (t *Table) IteratorValueSize(it Iterator) int {
	return int(cellValueSize(t.cellForIterator(it)))
}

// IteratorKey returns a zero-copy view of the slot's key bytes.
func (t *Table) IteratorKey(it Iterator) []byte {
	return cellKey(t.cellForIterator(it))
}

// IteratorValue returns a zero-copy view of the slot's value bytes.
func (t *Table) IteratorValue(it Iterator) []byte {
	return cellValue(t.cellForIterator(it))
}
