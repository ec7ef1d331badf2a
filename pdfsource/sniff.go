package pdfsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrNotPDF is returned by Read when the input has no PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// headerWindow is how far into the file the %PDF- marker may appear.
// Readers commonly tolerate leading junk up to this point.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// sniff checks rs for a PDF header and rewinds it.
func sniff(rs io.ReadSeeker) error {
	head := make([]byte, headerWindow)
	n, err := io.ReadFull(rs, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind: %w", err)
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return ErrNotPDF
	}
	return nil
}
