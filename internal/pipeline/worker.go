package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docsight/internal/markdown"
	"github.com/dgallion1/docsight/internal/ocr"
)

// Worker processes a single document job: OCR first, then per-page image
// splicing and block structuring.
type Worker struct {
	ocr *ocr.Client
	log *slog.Logger

	maxConcurrentPages int
}

func NewWorker(ocrClient *ocr.Client, log *slog.Logger, maxPages int) *Worker {
	return &Worker{
		ocr:                ocrClient,
		log:                log,
		maxConcurrentPages: maxPages,
	}
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("document_id", job.ID, "filename", job.Filename)

	// Phase 1: OCR, with retries on transient vendor failures.
	job.SetStatus(StatusProcessing, "ocr")

	var result *ocr.Result
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		result, lastErr = w.ocr.Process(ctx, job.Filename, job.FileData())
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable ocr error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "ocr")
			return
		}
	}
	if lastErr != nil {
		log.Error("ocr failed", "error", lastErr)
		job.AddError(fmt.Sprintf("ocr: %s", lastErr))
		job.SetStatus(StatusFailed, "ocr")
		return
	}

	job.SetTotalPages(len(result.Pages))
	log.Info("ocr complete", "pages", len(result.Pages))

	// Phase 2: splice and structure each page. Pages are independent, so
	// they run with bounded concurrency and are reassembled in order.
	job.SetStatus(StatusStructuring, "structuring")

	type pageOut struct {
		idx  int
		page PageResult
	}
	results := make(chan pageOut, len(result.Pages))
	sem := make(chan struct{}, w.maxConcurrentPages)

	for i, p := range result.Pages {
		sem <- struct{}{}
		go func(i int, p ocr.Page) {
			defer func() { <-sem }()
			spliced := markdown.SpliceImages(p.Markdown, p.Images)
			results <- pageOut{idx: i, page: PageResult{
				Index:    p.Index,
				Markdown: spliced,
				Blocks:   markdown.Transform(spliced),
				Images:   p.Images,
			}}
		}(i, p)
	}

	pages := make([]PageResult, len(result.Pages))
	for range result.Pages {
		out := <-results
		pages[out.idx] = out.page
		job.IncrPagesStructured()
	}

	// Chat context is the raw markdown, not the spliced form: inline image
	// payloads would dwarf the text.
	var text strings.Builder
	for i, p := range result.Pages {
		if i > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(p.Markdown)
	}

	job.SetResult(&Result{Pages: pages, Text: text.String()})
	job.SetStatus(StatusCompleted, "done")
	log.Info("document processed", "pages", len(pages))
}
