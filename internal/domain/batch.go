package domain

import "fmt"

// FileOutcome is the result of processing a single file of a batch.
type FileOutcome struct {
	Path string
	Err  error
}

type PlaylistRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BatchResult struct {
	Success       bool            `json:"success"`
	FilesFound    int             `json:"files_found"`
	FilesAffected int             `json:"files_affected"`
	Errors        []string        `json:"errors"`
	Record        *PlaylistRecord `json:"record"`

	Outcomes []FileOutcome `json:"-"`
}

func NewBatchResult(found int) *BatchResult {
	return &BatchResult{
		Success:    true,
		FilesFound: found,
		Errors:     []string{},
	}
}

// Track records the outcome of one file. Failed files still count as
// affected.
func (r *BatchResult) Track(file string, err error) {
	r.FilesAffected++
	r.Outcomes = append(r.Outcomes, FileOutcome{Path: file, Err: err})
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", file, err.Error()))
	}
}
