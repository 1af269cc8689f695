package binary

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"go.jacobcolvin.com/tlbx/errs"
)

// OpenMmap maps path read-only and decodes over the mapping directly,
// so section payloads are read from the mapping rather than from a
// copy of the file. Compressed sections decode into an owned buffer on
// first access (deflate has no zero-copy form) and are cached exactly
// as [Open] caches them. Decoded Values do not borrow from the mapping:
// the string table is copied into Go strings at open time, and Bytes
// payloads are copied on decode.
func OpenMmap(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("binary: open %s: %w", path, errs.ErrIo)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("binary: mmap %s: %w", path, errs.ErrIo)
	}

	closer := func() error {
		unmapErr := m.Unmap()
		closeErr := f.Close()

		if unmapErr != nil {
			return fmt.Errorf("binary: munmap %s: %w", path, unmapErr)
		}

		return closeErr
	}

	r, err := newReader([]byte(m), closer)
	if err != nil {
		closer()

		return nil, err
	}

	return r, nil
}
