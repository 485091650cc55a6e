package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dgallion1/docsight/internal/markdown"
	"github.com/dgallion1/docsight/internal/stats"
)

// Client calls the Mistral document OCR API. A document is uploaded first,
// exchanged for a signed URL, and then submitted to the OCR endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	// Stats records OCR call latencies for the stats endpoint.
	Stats *stats.Recorder
}

func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		Stats: stats.NewRecorder(time.Hour),
	}
}

// Model returns the configured OCR model name.
func (c *Client) Model() string {
	return c.model
}

// Page is one page of an OCR result: raw markdown plus the embedded images
// referenced by it.
type Page struct {
	Index    int
	Markdown string
	Images   []markdown.ImageRecord
}

// Result is the full OCR output for one document.
type Result struct {
	Model string
	Pages []Page
}

// Process runs the complete OCR flow for a document: upload, signed URL,
// OCR. The returned pages are in document order.
func (c *Client) Process(ctx context.Context, filename string, data []byte) (*Result, error) {
	fileID, err := c.uploadFile(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	signedURL, err := c.signedURL(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("signed url: %w", err)
	}
	return c.runOCR(ctx, signedURL)
}

func (c *Client) uploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", "ocr"); err != nil {
		return "", fmt.Errorf("write form field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if uploaded.ID == "" {
		return "", fmt.Errorf("upload response missing file id")
	}
	return uploaded.ID, nil
}

func (c *Client) signedURL(ctx context.Context, fileID string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/files/"+fileID+"/url?expiry=24", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	respBody, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var signed struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &signed); err != nil {
		return "", fmt.Errorf("decode signed url response: %w", err)
	}
	if signed.URL == "" {
		return "", fmt.Errorf("signed url response missing url")
	}
	return signed.URL, nil
}

type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

func (c *Client) runOCR(ctx context.Context, documentURL string) (*Result, error) {
	reqBody := ocrRequest{
		Model:              c.model,
		Document:           ocrDocument{Type: "document_url", DocumentURL: documentURL},
		IncludeImageBase64: true,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ocr", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}

	return parseResult(respBody)
}

// do executes a request and returns the response body, classifying 429 and
// 5xx statuses as retryable.
func (c *Client) do(httpReq *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ocr api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 256<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr api status %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
