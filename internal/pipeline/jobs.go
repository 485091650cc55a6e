package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/docsight/internal/markdown"
)

// JobStatus represents the state of a document OCR job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusProcessing  JobStatus = "processing"
	StatusStructuring JobStatus = "structuring"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
)

// PageResult is one finished page: spliced markdown plus its block
// sequence. Images keep the decoded payloads so the docx export can embed
// them; they are not serialized because the markdown already carries the
// spliced data URIs.
type PageResult struct {
	Index    int                    `json:"index"`
	Markdown string                 `json:"markdown"`
	Blocks   []markdown.Block       `json:"blocks"`
	Images   []markdown.ImageRecord `json:"-"`
}

// Result is the finished document. Text is the concatenated raw page
// markdown (without spliced payloads) used as chat context.
type Result struct {
	Pages []PageResult `json:"pages"`
	Text  string       `json:"-"`
}

// Job tracks the state of a single document through OCR and structuring.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"document_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	// PageCount is what the PDF itself reports at upload time; the OCR
	// service may segment differently.
	PageCount int `json:"page_count"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *Result
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	PagesTotal      int      `json:"pages_total"`
	PagesStructured int      `json:"pages_structured"`
	Errors          []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrPagesStructured atomically increments the structured page count.
func (j *Job) IncrPagesStructured() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesStructured++
	j.UpdatedAt = time.Now()
}

// SetTotalPages records the page count reported by the OCR service.
func (j *Job) SetTotalPages(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesTotal = n
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the finished document and releases the upload bytes,
// which are no longer needed once OCR has run.
func (j *Job) SetResult(r *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the finished document, or nil while processing.
func (j *Job) Result() *Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"document_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	PageCount int       `json:"page_count"`
	Progress  Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Filename:  j.Filename,
		PageCount: j.PageCount,
		Progress: Progress{
			PagesTotal:      j.Progress.PagesTotal,
			PagesStructured: j.Progress.PagesStructured,
			Errors:          errs,
		},
	}
}

// NewID returns a fresh document id.
func NewID() string {
	return generateULID()
}
