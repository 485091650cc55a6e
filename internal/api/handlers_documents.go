package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docsight/internal/docgen"
	"github.com/dgallion1/docsight/internal/pdfinfo"
	"github.com/dgallion1/docsight/internal/pipeline"
	"github.com/dgallion1/docsight/internal/render"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Reject anything the OCR service would choke on before spending a call.
	info, err := pdfinfo.Inspect(data)
	if err != nil {
		jsonError(w, "invalid pdf: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewID(),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		PageCount: info.Pages,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"document_id": job.ID,
		"status":      job.Status,
		"page_count":  job.PageCount,
		"poll_url":    fmt.Sprintf("/api/documents/%s/status", job.ID),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	job := s.orchestrator.GetJob(docID)
	if job == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	job, result := s.completedDocument(w, r)
	if result == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document_id": job.ID,
		"filename":    job.Filename,
		"pages":       result.Pages,
	})
}

func (s *Server) handleDocumentHTML(w http.ResponseWriter, r *http.Request) {
	_, result := s.completedDocument(w, r)
	if result == nil {
		return
	}

	var md strings.Builder
	for i, p := range result.Pages {
		if i > 0 {
			md.WriteString("\n\n")
		}
		md.WriteString(p.Markdown)
	}

	out, err := render.HTML(md.String())
	if err != nil {
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func (s *Server) handleDocumentDocx(w http.ResponseWriter, r *http.Request) {
	job, result := s.completedDocument(w, r)
	if result == nil {
		return
	}

	doc := docgen.New()
	for _, p := range result.Pages {
		doc.AppendBlocks(p.Blocks)
		doc.AppendImages(p.Images)
	}

	base := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".docx"))
	if _, err := doc.WriteTo(w); err != nil {
		s.log.Error("docx write failed", "document_id", job.ID, "error", err)
	}
}

// completedDocument resolves a docID to a finished job. It writes the
// appropriate error response and returns a nil result when the document is
// missing, failed, or still processing.
func (s *Server) completedDocument(w http.ResponseWriter, r *http.Request) (*pipeline.Job, *pipeline.Result) {
	docID := chi.URLParam(r, "docID")
	job := s.orchestrator.GetJob(docID)
	if job == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil, nil
	}
	snap := job.Snapshot()
	if snap.Status == pipeline.StatusFailed {
		jsonError(w, "document processing failed: "+strings.Join(snap.Progress.Errors, "; "), http.StatusUnprocessableEntity)
		return nil, nil
	}
	result := job.Result()
	if result == nil {
		jsonError(w, fmt.Sprintf("document not ready (status %s)", snap.Status), http.StatusConflict)
		return nil, nil
	}
	return job, result
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
