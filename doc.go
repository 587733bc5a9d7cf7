/*
Package phash provides a persistent, memory-mapped, fixed-capacity hash
table with per-entry expiration and approximate LRU-style eviction.

The entire table - header, index, and key/value payloads - lives in a
single file that is mapped into the address space of one process at a
time. Reads and writes go straight through the mapping: there is no
decode step and no copy on the write path, and Get returns a zero-copy
slice into the mapping itself.

Basic usage:

	import "github.com/theflywheel/phash"

	// Create a brand-new 1024-slot table, 64 bytes per payload cell
	// (56 of which are usable for key+value after the cell's own header)
	t, err := phash.Create("cache.phash", 1024, 64)
	if err != nil {
		log.Fatal(err)
	}
	defer t.Close()

	// Insert/update, good until expiry (an absolute time in the caller's
	// own clock units, compared against the caller-supplied now)
	t.Put(hash, key, value, expiry, now)

	// Read without touching expiry (newExpiry < 0 leaves it alone)
	value, found := t.Get(hash, key, -1)

	// Reopening an existing table
	t, err = phash.Open("cache.phash")

Features:

  - Fixed capacity: table_size is set at creation and never grows
  - Open addressing with linear probing for collision resolution
  - Approximate LRU: once every slot is occupied, Put evicts whichever
    occupied slot has the smallest expiry rather than growing the table
  - Per-entry expiration with lazy reclamation: a slot's prior occupant is
    only actually overwritten the next time that slot is chosen by a probe
  - Crash-survivable: close-then-reopen preserves every live entry
  - The caller supplies the hash; the core never hashes anything itself

Concurrency:

A Table assumes exactly one process has it open at a time (enforced with
an exclusive advisory file lock acquired in Create/Open) and is not
internally synchronized against concurrent goroutines within that process
- callers must serialize Put, Get, and iteration themselves.

Implementation Details:

The file holds a 16-byte header, followed by table_size 24-byte index
slots, followed by table_size max_assoc_bytes-sized payload cells. Each
index slot names a hash, an expiry, and the byte offset of the payload
cell holding that entry's key and value. A hash of 0 is reserved to mean
"slot never written"; an expiry of 0 means "empty or tombstoned" and is
shared between never-written slots and entries that have been moved by a
compacting Put or explicitly cleared via Get's newExpiry == 0. An entry
whose expiry has merely passed keeps its expiry until Put reclaims the slot.

Put's probe walk simultaneously looks for a matching key, the first
expired/tombstoned slot, and the occupied slot with the smallest expiry,
so insertion, in-place update, expired-slot reuse, and eviction all fall
out of one linear scan.
*/
package phash
