// Command ocr2docx converts a PDF into a Word document by running it through
// the Mistral OCR API and rebuilding the recognized markdown as styled
// paragraphs, headings, lists, and embedded images.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docsight/internal/config"
	"github.com/dgallion1/docsight/internal/docgen"
	"github.com/dgallion1/docsight/internal/markdown"
	"github.com/dgallion1/docsight/internal/ocr"
	"github.com/dgallion1/docsight/internal/pdfinfo"
)

func main() {
	var (
		inPath  = flag.String("in", "", "input PDF file (required)")
		outPath = flag.String("out", "", "output .docx file (default: input name with .docx)")
		timeout = flag.Duration("timeout", 10*time.Minute, "overall OCR timeout")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ocr2docx -in document.pdf [-out document.docx]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *outPath == "" {
		base := strings.TrimSuffix(*inPath, filepath.Ext(*inPath))
		*outPath = base + ".docx"
	}

	cfg := config.Load()
	if cfg.MistralAPIKey == "" {
		fmt.Fprintln(os.Stderr, "MISTRAL_API_KEY is required")
		os.Exit(1)
	}

	if err := run(log, cfg, *inPath, *outPath, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", *outPath)
}

func run(log *slog.Logger, cfg config.Config, inPath, outPath string, timeout time.Duration) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	info, err := pdfinfo.Inspect(data)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", inPath, err)
	}
	log.Info("input validated", "file", inPath, "pages", info.Pages)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := ocr.NewClient(cfg.MistralAPIKey, cfg.MistralOCRModel, cfg.MistralBaseURL)
	defer client.Close()

	result, err := client.Process(ctx, filepath.Base(inPath), data)
	if err != nil {
		return fmt.Errorf("ocr: %w", err)
	}
	log.Info("ocr complete", "model", result.Model, "pages", len(result.Pages))

	doc := docgen.New()
	for _, page := range result.Pages {
		spliced := markdown.SpliceImages(page.Markdown, page.Images)
		doc.AppendBlocks(markdown.Transform(spliced))
		embedded := doc.AppendImages(page.Images)
		log.Info("page structured", "page", page.Index, "images", embedded)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if _, err := doc.WriteTo(out); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
