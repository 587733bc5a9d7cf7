package phash

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Table is a handle to an open persistent hash table. It owns the mapping
// and the underlying file descriptor; Close is the single point at which
// both are released.
type Table struct {
	file *os.File
	data []byte

	tableSize     uint32
	maxAssocBytes uint32
}

// Create makes a brand-new table file at path, sized for tableSize index
// slots of maxAssocBytes each. Both arguments must be strictly positive.
// maxAssocBytes is rounded up to the next multiple of 8 with a diagnostic
// if it isn't already aligned. The file must not already exist.
func Create(path string, tableSize, maxAssocBytes int) (*Table, error) {
	// The XOR check mirrors the original's argument validation, but unlike
	// the original - where table_size > 0 also routed (0, 0) into the
	// open-existing-file path - Create and Open are separate entry points
	// here, so (0, 0) must be rejected outright rather than falling through
	// to a degenerate zero-slot table.
	if (tableSize > 0) != (maxAssocBytes > 0) || tableSize <= 0 || maxAssocBytes <= 0 {
		return nil, ErrInvalidArguments
	}

	ts := uint32(tableSize)
	mb := uint32(maxAssocBytes)
	if rounded := roundUpToEight(mb); rounded != mb {
		fmt.Fprintf(os.Stderr, "phash: rounding up max_assoc_bytes from %d to %d\n", mb, rounded)
		mb = rounded
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0660)
	if err != nil {
		return nil, fmt.Errorf("phash: could not create table %q: %w", path, err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("phash: could not lock table %q: %w", path, err)
	}

	length := fileLength(ts, mb)
	if err := f.Truncate(length); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("phash: could not truncate table %q: %w", path, err)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(length), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("phash: could not map table %q: %w", path, err)
	}

	h := headerAt(data)
	h.tableSize = ts
	h.maxAssocBytes = mb
	h.nextFreeAssoc = 0

	return &Table{file: f, data: data, tableSize: ts, maxAssocBytes: mb}, nil
}

// Open opens an existing table file read-write, taking the exclusive lock
// and mapping the whole file. The header is read as-is; no structural
// verification of the file contents is performed.
func Open(path string) (*Table, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0660)
	if err != nil {
		return nil, fmt.Errorf("phash: could not open table %q: %w", path, err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("phash: could not lock table %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("phash: could not stat table %q: %w", path, err)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(fi.Size()), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("phash: could not map table %q: %w", path, err)
	}

	h := headerAt(data)
	return &Table{file: f, data: data, tableSize: h.tableSize, maxAssocBytes: h.maxAssocBytes}, nil
}

// Close unmaps the file and closes the descriptor, releasing the advisory
// lock. Unmap/close failures are reported but the handle is freed regardless
// - there is nothing further the caller can do to recover it.
func (t *Table) Close() error {
	var errs []error
	if err := syscall.Munmap(t.data); err != nil {
		fmt.Fprintf(os.Stderr, "phash: could not unmap table: %v\n", err)
		errs = append(errs, err)
	}
	if err := t.file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "phash: could not close table: %v\n", err)
		errs = append(errs, err)
	}
	t.data = nil
	return errors.Join(errs...)
}

// GetTableSize returns the number of index slots the table was created
// with.
func (t *Table) GetTableSize() int {
	return int(t.tableSize)
}

// GetMaxAssocBytes returns the effective (rounded-up) payload cell size.
func (t *Table) GetMaxAssocBytes() int {
	return int(t.maxAssocBytes)
}

func (t *Table) header() *header {
	return headerAt(t.data)
}
