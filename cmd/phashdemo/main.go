// Command phashdemo is a small demo inserter for the phash library. It
// creates a table, inserts a handful of entries - including some that expire
// quickly - and then dumps every surviving entry via the iterator.
//
// phashdemo picks the hash function itself: the core library never hashes
// anything, so every caller (this one included) must supply its own.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/theflywheel/phash"
)

func hashKey(key string) uint64 {
	return xxhash.Sum64String(key)
}

func printValue(t *phash.Table, it phash.Iterator) {
	fmt.Printf("hash = %d, expiry = %d, assoc_offset = %d, key = %s, value = %s\n",
		t.IteratorHash(it), t.IteratorExpiry(it), t.IteratorAssocOffset(it),
		t.IteratorKey(it), t.IteratorValue(it))
}

func main() {
	if len(os.Args) != 4 {
		fmt.Printf("Usage: %s table_name table_size max_assoc_bytes\n", os.Args[0])
		os.Exit(1)
	}

	path := os.Args[1]
	var tableSize, maxAssocBytes int
	fmt.Sscanf(os.Args[2], "%d", &tableSize)
	fmt.Sscanf(os.Args[3], "%d", &maxAssocBytes)

	t, err := phash.Create(path, tableSize, maxAssocBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer t.Close()

	now := time.Now().Unix()

	put := func(key, value string, expiry int64) {
		if _, err := t.Put(hashKey(key), []byte(key), []byte(value), expiry, now); err != nil {
			fmt.Fprintf(os.Stderr, "put %q: %v\n", key, err)
		}
	}

	put("firstkey", "firstvalue", now+60)
	put("expiredkey", "expiredvalue", now-1)
	put("secondkey", "secondvalue", now+60)
	put("expiredkey2", "expiredvalue2", now-2)
	put("mykey2", "myvalue2", now-1)
	put("mykey2", "myvalue2redux", now+120)

	for it := t.Begin(); it != t.End(); it = t.Advance(it) {
		printValue(t, it)
	}
}
