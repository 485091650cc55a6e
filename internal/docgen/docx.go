package docgen

import (
	"fmt"
	"io"

	"github.com/dgallion1/docsight/internal/markdown"
	"github.com/fumiama/go-docx"
)

// Half-point font sizes per heading level; go-docx takes them as strings.
var headingSizes = map[int]string{
	1: "36",
	2: "30",
	3: "26",
}

// Document accumulates structured blocks into a .docx file.
type Document struct {
	file *docx.Docx
}

func New() *Document {
	return &Document{file: docx.New().WithDefaultTheme()}
}

// AppendBlocks maps each block onto its docx representation: headings
// become sized bold runs, list items bulleted paragraphs, paragraphs one
// styled run per span, spacers empty paragraphs.
func (d *Document) AppendBlocks(blocks []markdown.Block) {
	for _, b := range blocks {
		switch b.Kind {
		case markdown.KindHeading:
			size, ok := headingSizes[b.Level]
			if !ok {
				size = "24"
			}
			d.file.AddParagraph().AddText(b.Text).Size(size).Bold()

		case markdown.KindListItem:
			d.file.AddParagraph().AddText("• " + b.Text)

		case markdown.KindParagraph:
			p := d.file.AddParagraph()
			for _, r := range b.Runs {
				run := p.AddText(r.Text)
				if r.Bold {
					run.Bold()
				}
				if r.Italic {
					run.Italic()
				}
			}

		case markdown.KindSpacer:
			d.file.AddParagraph()
		}
	}
}

// AppendImages embeds the decoded payloads of the given records as inline
// drawings, one per paragraph, and returns how many were embedded.
// Payload-less records and images the library cannot size are skipped; a
// page with a broken image still exports.
func (d *Document) AppendImages(images []markdown.ImageRecord) int {
	embedded := 0
	for _, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		if _, err := d.file.AddParagraph().AddInlineDrawing(img.Data); err != nil {
			continue
		}
		embedded++
	}
	return embedded
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := d.file.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write docx: %w", err)
	}
	return n, nil
}
