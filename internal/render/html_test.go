package render

import (
	"strings"
	"testing"
)

func TestHTML_BasicMarkdown(t *testing.T) {
	out, err := HTML("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("expected h1, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected strong, got %q", out)
	}
}

func TestHTML_KeepsInlineDataImages(t *testing.T) {
	out, err := HTML("![fig](data:image/jpeg;base64,AAAA)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `src="data:image/jpeg;base64,AAAA"`) {
		t.Errorf("expected inline data image to survive, got %q", out)
	}
}

func TestHTML_StripsRemoteImageTargets(t *testing.T) {
	out, err := HTML("![diagram](https://example.com/a.png)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "example.com") {
		t.Errorf("expected remote image target stripped, got %q", out)
	}
	// The placeholder keeps its alt text.
	if !strings.Contains(out, `alt="diagram"`) {
		t.Errorf("expected alt text kept, got %q", out)
	}
}

func TestHTML_StripsUnresolvedImageIDs(t *testing.T) {
	// An image reference whose id was never spliced must not become a
	// fetchable target.
	out, err := HTML("![img-2](img-2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, `src="img-2"`) {
		t.Errorf("expected unresolved id target stripped, got %q", out)
	}
}
