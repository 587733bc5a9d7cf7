// Command phashview opens an existing phash table and prints its table size
// and max assoc bytes followed by every live entry, using only the public
// phash API. next_free_assoc is not printed.
package main

import (
	"fmt"
	"os"

	"github.com/theflywheel/phash"
)

func printHeader(t *phash.Table) {
	fmt.Printf("HEADER: table size = %d, max assoc bytes = %d\n",
		t.GetTableSize(), t.GetMaxAssocBytes())
}

func printValue(t *phash.Table, it phash.Iterator) {
	fmt.Printf("hash = %d, expiry = %d, assoc_offset = %d, "+
		"key_size = %d, value_size = %d, key = %s, value = %s\n",
		t.IteratorHash(it), t.IteratorExpiry(it), t.IteratorAssocOffset(it),
		t.IteratorKeySize(it), t.IteratorValueSize(it),
		t.IteratorKey(it), t.IteratorValue(it))
}

func printEntries(t *phash.Table) {
	for it := t.Begin(); it != t.End(); it = t.Advance(it) {
		printValue(t, it)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s table_path\n", os.Args[0])
		os.Exit(1)
	}

	t, err := phash.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer t.Close()

	printHeader(t)
	printEntries(t)
}
