package models

import "time"

type NotificationType string

const (
	NotificationBidReceived  NotificationType = "bid_received"
	NotificationBidAccepted  NotificationType = "bid_accepted"
	NotificationBidRejected  NotificationType = "bid_rejected"
	NotificationUserVerified NotificationType = "user_verified"
	NotificationUserRejected NotificationType = "user_rejected"
)

type Notification struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	UserID    string           `gorm:"size:36;not null;index" json:"userId"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	JobID     *string          `gorm:"size:36" json:"jobId,omitempty"`
	BidID     *string          `gorm:"size:36" json:"bidId,omitempty"`
}
