package markdown

// Kind discriminates the block variants produced by Transform.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindListItem  Kind = "list_item"
	KindParagraph Kind = "paragraph"
	KindSpacer    Kind = "spacer"
)

// Run is a contiguous span of paragraph text with a single style.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Block is one structured unit of document content. Level is set for
// headings (1-3), Text for headings and list items, Runs for paragraphs.
// LastInGroup marks the final item of a consecutive list so downstream
// generators can control spacing after the group.
type Block struct {
	Kind        Kind   `json:"kind"`
	Level       int    `json:"level,omitempty"`
	Text        string `json:"text,omitempty"`
	LastInGroup bool   `json:"last_in_group,omitempty"`
	Runs        []Run  `json:"runs,omitempty"`
}

// ImageRecord is an embedded image reported by the OCR service. Data is nil
// when the service omitted the payload; MIME is empty unless the payload
// declared its own format tag.
type ImageRecord struct {
	ID   string
	MIME string
	Data []byte
}
