package markdown

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestSpliceImages_ExactPlaceholder(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	out := SpliceImages("![img-1](img-1)", []ImageRecord{{ID: "img-1", Data: payload}})

	want := "![img-1](data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload) + ")"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestSpliceImages_MissingPayloadLeavesReferenceUnresolved(t *testing.T) {
	input := "before ![img-1](img-1) after"
	out := SpliceImages(input, []ImageRecord{{ID: "img-1"}})
	if out != input {
		t.Errorf("expected input unchanged, got %q", out)
	}
}

func TestSpliceImages_LoosePassPreservesAltText(t *testing.T) {
	out := SpliceImages("![Figure 3](img-1)", []ImageRecord{{ID: "img-1", Data: []byte{1}}})
	if !strings.HasPrefix(out, "![Figure 3](data:image/jpeg;base64,") {
		t.Errorf("expected alt text preserved and target spliced, got %q", out)
	}
}

func TestSpliceImages_BothFormsNoDoubleReplacement(t *testing.T) {
	input := "![img-1](img-1)\n![A chart](img-1)"
	out := SpliceImages(input, []ImageRecord{{ID: "img-1", Data: []byte{1, 2}}})

	uri := ImageRecord{ID: "img-1", Data: []byte{1, 2}}.dataURI()
	if strings.Count(out, uri) != 2 {
		t.Errorf("expected exactly 2 spliced references, got %d in %q", strings.Count(out, uri), out)
	}
	if strings.Contains(out, "(img-1)") {
		t.Errorf("expected no bare targets left, got %q", out)
	}
	if strings.Contains(out, "data:image/jpeg;base64,data:") {
		t.Errorf("spliced reference was corrupted by a second pass: %q", out)
	}
}

func TestSpliceImages_FormatTagFromRecord(t *testing.T) {
	out := SpliceImages("![p](p)", []ImageRecord{{ID: "p", MIME: "image/png", Data: []byte{0x89}}})
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Errorf("expected png data uri, got %q", out)
	}
}

func TestSpliceImages_UnreferencedRecordIsHarmless(t *testing.T) {
	input := "no images here"
	out := SpliceImages(input, []ImageRecord{{ID: "ghost", Data: []byte{1}}})
	if out != input {
		t.Errorf("expected input unchanged, got %q", out)
	}
}

func TestSpliceImages_MultipleRecordsInOrder(t *testing.T) {
	input := "![a](a) ![b](b)"
	out := SpliceImages(input, []ImageRecord{
		{ID: "a", Data: []byte{1}},
		{ID: "b", Data: []byte{2}},
	})
	if strings.Contains(out, "(a)") || strings.Contains(out, "(b)") {
		t.Errorf("expected both placeholders spliced, got %q", out)
	}
}
