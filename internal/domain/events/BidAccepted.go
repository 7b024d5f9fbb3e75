package events

import (
	"github.com/maxaizer/hirenearby/internal/domain/models"
)

var BidAcceptedTopic = "BidAcceptedEvent"

type BidAccepted struct {
	Bid models.Bid
	Job models.Job
}
