package events

import (
	"github.com/maxaizer/hirenearby/internal/domain/models"
)

var UserVerificationChangedTopic = "UserVerificationChangedEvent"

type UserVerificationChanged struct {
	User     models.User
	Verified bool
}
