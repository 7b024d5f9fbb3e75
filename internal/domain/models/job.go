package models

import (
	"time"

	"github.com/maxaizer/hirenearby/internal/apperrors"
)

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func ToJobStatus(s string) (JobStatus, error) {
	switch s {
	case string(JobOpen):
		return JobOpen, nil
	case string(JobInProgress):
		return JobInProgress, nil
	case string(JobCompleted):
		return JobCompleted, nil
	case string(JobCancelled):
		return JobCancelled, nil
	default:
		return "", apperrors.NewValidationError("status must be one of open, in_progress, completed, cancelled")
	}
}

// CanTransitionTo reports the status changes an owner may make: in_progress -> completed, and
// cancellation from any non-terminal status. open -> in_progress happens only by accepting a bid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobOpen:
		return next == JobCancelled
	case JobInProgress:
		return next == JobCompleted || next == JobCancelled
	default:
		return false
	}
}

func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancelled
}

type Job struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	Category      string    `gorm:"index" json:"category"`
	Location      string    `json:"location"`
	Budget        Budget    `gorm:"embedded;embeddedPrefix:budget_" json:"budget"`
	PostedBy      string    `gorm:"size:36;index;not null" json:"postedBy"`
	PostedAt      time.Time `json:"postedAt"`
	Status        JobStatus `gorm:"type:varchar(20);not null" json:"status"`
	BidsCount     int       `gorm:"not null" json:"bidsCount"`
	AcceptedBidID *string   `gorm:"size:36" json:"acceptedBid,omitempty"`
	Urgent        bool      `json:"urgent"`
}

func NewJob(ownerID, title, description, category, location string, budget Budget, urgent bool) *Job {
	return &Job{
		Title:       title,
		Description: description,
		Category:    category,
		Location:    location,
		Budget:      budget,
		PostedBy:    ownerID,
		PostedAt:    time.Now().UTC(),
		Status:      JobOpen,
		Urgent:      urgent,
	}
}

func (j *Job) IsOwnedBy(userID string) bool {
	return j.PostedBy == userID
}

// CheckBid reports why a bid of amount by bidderID cannot be placed on the job, if it cannot.
func (j *Job) CheckBid(bidderID string, amount float64) error {
	if j.Status != JobOpen {
		return apperrors.NewConflictError("job %s is not open for bidding", j.ID)
	}
	if j.IsOwnedBy(bidderID) {
		return apperrors.NewForbiddenError("you cannot bid on your own job")
	}
	return j.Budget.CheckAmount(amount)
}

type JobFilters struct {
	Category   string
	Location   string
	BudgetType BudgetType
	BudgetMin  *float64
	BudgetMax  *float64
	Urgent     bool
	// ExcludePostedBy hides the viewer's own postings.
	ExcludePostedBy string
}

const JobsPageSize = 10

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalJobs   int64 `json:"totalJobs"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{CurrentPage: page, TotalPages: totalPages, TotalJobs: total}
}

type JobsPage struct {
	Jobs       []Job      `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}
