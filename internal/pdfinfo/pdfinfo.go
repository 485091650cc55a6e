package pdfinfo

import (
	"bytes"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// Info describes an uploaded PDF before it is sent to the OCR service.
type Info struct {
	Pages int
}

var pdfHeader = []byte("%PDF-")

// IsPDF reports whether the data starts with a PDF header. Cheap first-line
// check for upload handlers; Inspect does the full structural validation.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

// Inspect validates that data is a readable PDF and returns its page count.
// Uploads that fail here are rejected before any OCR call is made.
func Inspect(data []byte) (Info, error) {
	if !IsPDF(data) {
		return Info{}, fmt.Errorf("not a pdf: missing %%PDF header")
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("read pdf: %w", err)
	}
	return Info{Pages: reader.NumPage()}, nil
}
