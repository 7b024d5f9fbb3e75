package events

import (
	"github.com/maxaizer/hirenearby/internal/domain/models"
)

var BidRejectedTopic = "BidRejectedEvent"

// BidRejected is published for explicit rejections as well as for siblings collapsed by an accept
// or a job cancellation.
type BidRejected struct {
	Bid models.Bid
	Job models.Job
}
