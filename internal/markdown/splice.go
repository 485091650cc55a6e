package markdown

import (
	"encoding/base64"
	"strings"
)

// SpliceImages rewrites image placeholders in OCR markdown, substituting an
// inline data URI for each record that carries a payload. The OCR service
// marks inline images as ![id](id); a second pass also rewrites ](id)
// targets whose alt text differs from the id, since alt text is not
// guaranteed to match. Matching is literal string replacement, so ids are
// opaque tokens regardless of their content. Records without a payload are
// skipped and their references stay unresolved.
func SpliceImages(markdown string, images []ImageRecord) string {
	for _, img := range images {
		if len(img.Data) == 0 || img.ID == "" {
			continue
		}
		uri := img.dataURI()
		// Exact placeholder form first; the loose pass cannot touch spans
		// already rewritten because their target is no longer the bare id.
		markdown = strings.ReplaceAll(markdown, "!["+img.ID+"]("+img.ID+")", "!["+img.ID+"]("+uri+")")
		markdown = strings.ReplaceAll(markdown, "]("+img.ID+")", "]("+uri+")")
	}
	return markdown
}

func (r ImageRecord) dataURI() string {
	mime := r.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}
