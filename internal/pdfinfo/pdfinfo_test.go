package pdfinfo

import (
	"fmt"
	"strings"
	"testing"
)

// minimalPDF assembles a one-page PDF with a correct xref table. Offsets are
// computed while building so the test does not depend on hand-counted bytes.
func minimalPDF() []byte {
	var sb strings.Builder
	sb.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
	}

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = sb.Len()
		sb.WriteString(obj)
	}

	xrefStart := sb.Len()
	sb.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	sb.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		sb.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	sb.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart))

	return []byte(sb.String())
}

func TestInspect_ValidPDF(t *testing.T) {
	info, err := Inspect(minimalPDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Pages != 1 {
		t.Errorf("expected 1 page, got %d", info.Pages)
	}
}

func TestInspect_RejectsNonPDF(t *testing.T) {
	_, err := Inspect([]byte("this is a text file"))
	if err == nil {
		t.Fatal("expected error for non-pdf data")
	}
	if !strings.Contains(err.Error(), "not a pdf") {
		t.Errorf("expected header error, got %v", err)
	}
}

func TestInspect_RejectsTruncatedPDF(t *testing.T) {
	if _, err := Inspect([]byte("%PDF-1.4\ngarbage")); err == nil {
		t.Error("expected error for truncated pdf")
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte("%PDF-1.7\n..."), true},
		{[]byte("PK\x03\x04"), false},
		{[]byte(""), false},
	}
	for _, tt := range tests {
		if got := IsPDF(tt.data); got != tt.want {
			t.Errorf("IsPDF(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
