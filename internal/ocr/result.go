package ocr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgallion1/docsight/internal/markdown"
)

type ocrResponse struct {
	Model string `json:"model"`
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
		Images   []struct {
			ID          string `json:"id"`
			ImageBase64 string `json:"image_base64"`
		} `json:"images"`
	} `json:"pages"`
	// Flat fallback used when the service does not segment by page.
	Content string `json:"content"`
}

// parseResult maps the vendor response onto the Result model. A response
// with no page list but a flat content field becomes a single synthetic
// page. Image payloads that fail to decode degrade to payload-less records
// so their references stay unresolved rather than failing the document.
func parseResult(body []byte) (*Result, error) {
	var apiResp ocrResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}

	result := &Result{Model: apiResp.Model}
	for _, p := range apiResp.Pages {
		page := Page{Index: p.Index, Markdown: p.Markdown}
		for _, img := range p.Images {
			page.Images = append(page.Images, decodeImage(img.ID, img.ImageBase64))
		}
		result.Pages = append(result.Pages, page)
	}

	if len(result.Pages) == 0 && apiResp.Content != "" {
		result.Pages = []Page{{Index: 0, Markdown: apiResp.Content}}
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("ocr response has no pages and no content")
	}
	return result, nil
}

// decodeImage turns a wire image payload into an ImageRecord. The service
// sends either bare base64 or a full data URI; both forms are accepted.
func decodeImage(id, payload string) markdown.ImageRecord {
	rec := markdown.ImageRecord{ID: id}
	if payload == "" {
		return rec
	}

	b64 := payload
	if strings.HasPrefix(payload, "data:") {
		marker := ";base64,"
		i := strings.Index(payload, marker)
		if i < 0 {
			return rec
		}
		rec.MIME = payload[len("data:"):i]
		b64 = payload[i+len(marker):]
	}

	data, err := decodeBase64(b64)
	if err != nil {
		return markdown.ImageRecord{ID: id, MIME: rec.MIME}
	}
	rec.Data = data
	return rec
}

// decodeBase64 accepts both padded and unpadded encodings; the vendor is
// not consistent about padding.
func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
