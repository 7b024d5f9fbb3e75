package models

import "time"

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// CanTransitionTo encodes the bid lifecycle: only pending bids move, and only to a terminal status.
func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	return s == BidPending && (next == BidAccepted || next == BidRejected)
}

func (s BidStatus) IsTerminal() bool {
	return s == BidAccepted || s == BidRejected
}

type Bid struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	JobID      string    `gorm:"size:36;not null;index:idx_bids_job_status" json:"jobId"`
	BidderID   string    `gorm:"size:36;not null;index" json:"bidderId"`
	BidderName string    `json:"bidderName"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Message    string    `json:"message"`
	Status     BidStatus `gorm:"type:varchar(20);not null;index:idx_bids_job_status" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewBid(jobID, bidderID, bidderName string, amount float64, message string) *Bid {
	return &Bid{
		JobID:      jobID,
		BidderID:   bidderID,
		BidderName: bidderName,
		Amount:     amount,
		Message:    message,
		Status:     BidPending,
	}
}

// BidDecision is the outcome of accepting or rejecting a bid: the decided bid, its job after the
// change and any sibling bids that were rejected along with it. Changed is false when the call
// found the bid already in the requested status.
type BidDecision struct {
	Bid      Bid
	Job      Job
	Rejected []Bid
	Changed  bool
}
