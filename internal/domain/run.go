package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Workflow names a user-facing operation
type Workflow string

const (
	WorkflowDownload Workflow = "dl"
	WorkflowAudio    Workflow = "audio"
	WorkflowInfo     Workflow = "info"
	WorkflowPair     Workflow = "pair"
	WorkflowDoctor   Workflow = "doctor"
)

// ValidateWorkflow checks if a workflow name is known
func ValidateWorkflow(w Workflow) bool {
	switch w {
	case WorkflowDownload, WorkflowAudio, WorkflowInfo, WorkflowPair, WorkflowDoctor:
		return true
	}
	return false
}

// RunRecord is one workflow invocation kept in the run history
type RunRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Workflow  Workflow  `json:"workflow" gorm:"not null;index"`
	URL       string    `json:"url,omitempty"`
	OutDir    string    `json:"outdir,omitempty"`
	VideoID   string    `json:"video_id,omitempty" gorm:"index"`
	Command   string    `json:"command,omitempty" gorm:"type:text"` // display form of the primary command
	ExitCode  int       `json:"exit_code"`
	Summary   string    `json:"summary,omitempty" gorm:"type:text"` // JSON summary, when the workflow has one
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (RunRecord) TableName() string {
	return "runs"
}

// NewRunRecord creates a record for a finished workflow
func NewRunRecord(workflow Workflow, url string, exitCode int) *RunRecord {
	return &RunRecord{
		ID:        uuid.New().String(),
		Workflow:  workflow,
		URL:       url,
		ExitCode:  exitCode,
		CreatedAt: time.Now(),
	}
}

// SetSummary stores v as the record's JSON summary
func (r *RunRecord) SetSummary(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Summary = string(data)
	return nil
}

// Succeeded reports whether the run exited with code 0
func (r *RunRecord) Succeeded() bool {
	return r.ExitCode == ExitOK
}

// RunRepository defines the interface for run history persistence
type RunRepository interface {
	// Create stores a new run record
	Create(run *RunRecord) error

	// FindByID finds a run by ID; returns nil when not found
	FindByID(id string) (*RunRecord, error)

	// FindRecent returns the newest runs first, at most limit (0 = no limit)
	FindRecent(limit int) ([]*RunRecord, error)

	// FindByWorkflow returns runs of one workflow, newest first
	FindByWorkflow(workflow Workflow, limit int) ([]*RunRecord, error)

	// Count returns the total number of runs
	Count() (int64, error)
}
