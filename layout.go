package phash

import "unsafe"

// File Format:
//
// This is a fixed-capacity, open-addressed hash table stored as one flat
// memory-mapped file. Every region starts on an 8-byte boundary so the
// header and index can be read back by overlaying Go structs directly onto
// the mapping - no decode step, no portability across architectures.
//
// +---------------------------+
// | Header (16 bytes)         |
// +---------------------------+
// | Index slot 0 (24 bytes)   |
// | Index slot 1              |
// | ...                       |
// | Index slot tableSize-1    |
// +---------------------------+
// | Payload cell 0             (maxAssocBytes bytes)
// | Payload cell 1                                  |
// | ...                                              |
// | Payload cell tableSize-1                         |
// +---------------------------------------------------+
//
// - Header:
//   - tableSize (4 bytes): number of index slots, fixed at creation.
//   - maxAssocBytes (4 bytes): size of one payload cell, a multiple of 8.
//   - nextFreeAssoc (8 bytes): byte offset of the next never-used cell.
//
// - Index slot:
//   - hash (8 bytes): 0 means "never written". A caller-supplied hash of 0
//     is remapped to 1 before it ever reaches the index.
//   - expiry (8 bytes, signed): 0 means "empty or tombstoned".
//   - assocOffset (8 bytes): byte offset into the payload arena.
//
// - Payload cell:
//   - keySize (4 bytes), valueSize (4 bytes), then keySize bytes of key and
//     valueSize bytes of value. The remainder of the cell is unused padding.

const (
	headerSize     = 16
	indexSize      = 24
	cellHeaderSize = 8 // key_size + value_size prefix within a payload cell
)

type header struct {
	tableSize     uint32
	maxAssocBytes uint32
	nextFreeAssoc uint64
}

type indexSlot struct {
	hash        uint64
	expiry      int64
	assocOffset uint64
}

func init() {
	// These hold on every platform Go supports, but the whole point of this
	// layout is that it can be overlaid directly onto the mapping - if they
	// ever stopped holding, every offset computation below would be wrong.
	if unsafe.Sizeof(header{}) != headerSize {
		panic("phash: header size assumption violated")
	}
	if unsafe.Sizeof(indexSlot{}) != indexSize {
		panic("phash: indexSlot size assumption violated")
	}
}

// roundUpToEight rounds n up to the next multiple of 8.
func roundUpToEight(n uint32) uint32 {
	if rem := n % 8; rem != 0 {
		return n + (8 - rem)
	}
	return n
}

// fileLength returns the number of bytes the file must occupy for a table of
// the given size and cell width.
func fileLength(tableSize, maxAssocBytes uint32) int64 {
	return int64(headerSize) + int64(indexSize)*int64(tableSize) + int64(maxAssocBytes)*int64(tableSize)
}

// headerAt overlays the header struct onto the start of the mapping.
func headerAt(data []byte) *header {
	return (*header)(unsafe.Pointer(&data[0]))
}

// slotAt returns the i-th index slot. Callers must ensure i < tableSize.
func slotAt(data []byte, i uint32) *indexSlot {
	off := headerSize + indexSize*int(i)
	return (*indexSlot)(unsafe.Pointer(&data[off]))
}

// payloadBase returns the byte offset where the payload arena begins.
func payloadBase(tableSize uint32) int {
	return headerSize + indexSize*int(tableSize)
}

// cellAt returns the payload cell at assocOffset, sized to maxAssocBytes.
func cellAt(data []byte, tableSize, maxAssocBytes uint32, assocOffset uint64) []byte {
	base := payloadBase(tableSize) + int(assocOffset)
	return data[base : base+int(maxAssocBytes)]
}

// cellKeySize, cellValueSize, cellKey, cellValue read the key_size/value_size
// prefix and the key/value bytes that follow it within a payload cell.
func cellKeySize(cell []byte) uint32 {
	return *(*uint32)(unsafe.Pointer(&cell[0]))
}

func cellValueSize(cell []byte) uint32 {
	return *(*uint32)(unsafe.Pointer(&cell[4]))
}

func cellKey(cell []byte) []byte {
	ks := cellKeySize(cell)
	return cell[8 : 8+ks]
}

func cellValue(cell []byte) []byte {
	ks := cellKeySize(cell)
	vs := cellValueSize(cell)
	return cell[8+ks : 8+ks+vs]
}

// writeCell writes key_size, value_size, key and value into a payload cell.
func writeCell(cell []byte, key, value []byte) {
	*(*uint32)(unsafe.Pointer(&cell[0])) = uint32(len(key))
	*(*uint32)(unsafe.Pointer(&cell[4])) = uint32(len(value))
	copy(cell[8:], key)
	copy(cell[8+len(key):], value)
}

// writeCellValue rewrites only the value and its size, leaving the key and
// key_size untouched. Used by Put's in-place update branch.
func writeCellValue(cell []byte, value []byte) {
	*(*uint32)(unsafe.Pointer(&cell[4])) = uint32(len(value))
	ks := cellKeySize(cell)
	copy(cell[8+ks:], value)
}
