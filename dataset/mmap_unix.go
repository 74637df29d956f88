//go:build unix

package dataset

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MappedDataset is a Dataset backed by a memory-mapped file of raw
// native-endian float64 coordinates in row-major order.
//
// The mapping is read-only. Close must be called to release it; the
// dataset must not be used afterwards.
type MappedDataset struct {
	Dataset
	raw []byte
}

// OpenMapped memory-maps the file at path as a dataset with the given
// dimension stride.
func OpenMapped(path string, dim int) (*MappedDataset, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := info.Size()
	if size == 0 {
		return nil, ErrEmpty
	}
	if size%8 != 0 {
		return nil, fmt.Errorf("file size %d is not a multiple of 8 bytes", size)
	}
	values := int(size / 8)
	if values%dim != 0 {
		return nil, fmt.Errorf("file holds %d values, not a multiple of dimension %d", values, dim)
	}

	raw, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	data := unsafe.Slice((*float64)(unsafe.Pointer(&raw[0])), values)

	return &MappedDataset{
		Dataset: Dataset{data: data, dim: dim},
		raw:     raw,
	}, nil
}

// Close unmaps the underlying file.
func (m *MappedDataset) Close() error {
	if m.raw == nil {
		return nil
	}
	raw := m.raw
	m.raw = nil
	m.data = nil
	return unix.Munmap(raw)
}
