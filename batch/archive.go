package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Archive collects named byte blobs and produces one combined downloadable
// blob on demand. It is the boundary to the archive collaborator; Run only
// ever calls Add and, after every row succeeded, Blob.
type Archive interface {
	// Add stores data under the given entry name.
	Add(name string, data []byte) error
	// Blob finalizes the archive and returns the combined bytes. The
	// archive is unusable afterwards.
	Blob() ([]byte, error)
}

// ZipArchive is an in-memory zip implementation of Archive. Compression
// level is a tuning knob with no semantic effect on the batch.
type ZipArchive struct {
	buf    bytes.Buffer
	zw     *zip.Writer
	closed bool
}

// NewZipArchive creates a zip archive compressing at the given
// flate level (flate.BestSpeed through flate.BestCompression, or
// flate.DefaultCompression).
func NewZipArchive(level int) *ZipArchive {
	a := &ZipArchive{}
	a.zw = zip.NewWriter(&a.buf)
	a.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return a
}

// Add writes one entry to the archive.
func (a *ZipArchive) Add(name string, data []byte) error {
	if a.closed {
		return fmt.Errorf("batch: archive already finalized")
	}
	w, err := a.zw.Create(name)
	if err != nil {
		return fmt.Errorf("batch: creating entry %q: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("batch: writing entry %q: %w", name, err)
	}
	return nil
}

// Blob closes the zip and returns its bytes.
func (a *ZipArchive) Blob() ([]byte, error) {
	if a.closed {
		return nil, fmt.Errorf("batch: archive already finalized")
	}
	a.closed = true
	if err := a.zw.Close(); err != nil {
		return nil, fmt.Errorf("batch: closing zip: %w", err)
	}
	return a.buf.Bytes(), nil
}
