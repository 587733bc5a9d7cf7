package phash

import "errors"

// Argument errors: the operation is refused, the handle is unaffected.
var (
	// ErrInvalidArguments is returned by Create when tableSize and
	// maxAssocBytes are not both strictly positive.
	ErrInvalidArguments = errors.New("phash: tableSize and maxAssocBytes must both be positive")

	// ErrKeyValueTooLarge is returned by Put when key_size + value_size
	// exceeds the usable space in a payload cell (max_assoc_bytes minus the
	// cell's key_size/value_size header).
	ErrKeyValueTooLarge = errors.New("phash: combined key and value size exceeds max assoc bytes")

	// ErrTableFull is returned by Put when its append branch is taken after
	// every physical cell has already been handed out. Each append fills a
	// never-written slot and no slot returns to that state, so at most
	// table_size appends happen on a table built through Put alone.
	ErrTableFull = errors.New("phash: table full, no slot available")
)
