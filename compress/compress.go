package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"go.jacobcolvin.com/tlbx/errs"
)

// minSize is the smallest uncompressed section size worth attempting to
// compress at all.
const minSize = 64

// acceptRatio is the largest compressed/uncompressed size ratio that still
// counts as a win; a candidate at or above it is discarded in favor of the
// original bytes.
const acceptRatio = 0.9

// ShouldAttempt reports whether a section of uncompressedSize bytes is
// large enough to be worth attempting compression on.
func ShouldAttempt(uncompressedSize int) bool {
	return uncompressedSize >= minSize
}

// Encode compresses data and reports whether the compressed form was
// accepted. It returns data unchanged, with used=false, when data is
// smaller than the minimum section size or when the compressed candidate
// is not at least 10% smaller than data — per the index entry's
// compressed flag, callers must persist whichever of the two outcomes
// this function reports, not assume one.
func Encode(data []byte) (out []byte, used bool, err error) {
	if !ShouldAttempt(len(data)) {
		return data, false, nil
	}

	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, false, fmt.Errorf("compress: new writer: %w", errs.ErrIo)
	}

	if _, err := w.Write(data); err != nil {
		return nil, false, fmt.Errorf("compress: write: %w", errs.ErrIo)
	}

	if err := w.Close(); err != nil {
		return nil, false, fmt.Errorf("compress: close: %w", errs.ErrIo)
	}

	candidate := buf.Bytes()
	if float64(len(candidate)) >= float64(len(data))*acceptRatio {
		return data, false, nil
	}

	return candidate, true, nil
}

// Decode reverses [Encode]: it inflates data, which must decompress to
// exactly uncompressedSize bytes. Passing data that was never compressed
// (used=false at encode time) is a caller error; Decode always assumes
// its input is deflate-compressed.
func Decode(data []byte, uncompressedSize int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out := make([]byte, uncompressedSize)

	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("compress: inflate: %w", errs.ErrIo)
	}

	if n, err := r.Read(make([]byte, 1)); err != io.EOF || n != 0 {
		return nil, fmt.Errorf("compress: inflated size exceeds %d bytes: %w", uncompressedSize, errs.ErrIo)
	}

	return out, nil
}
