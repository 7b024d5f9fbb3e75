package events

import (
	"github.com/maxaizer/hirenearby/internal/domain/models"
)

var BidPlacedTopic = "BidPlacedEvent"

type BidPlaced struct {
	Bid models.Bid
	Job models.Job
}
