package models

import (
	"strings"
	"time"

	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/samber/lo"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Location       string    `json:"location"`
	Skills         []string  `gorm:"serializer:json" json:"skills"`
	IsVerified     bool      `json:"isVerified"`
	Role           Role      `gorm:"type:varchar(10);not null" json:"role"`
	TelegramChatID *int64    `json:"telegramChatId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewUser(name, email, passwordHash, location string, skills []string) *User {
	return &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Location:     location,
		Skills:       NormalizeSkills(skills),
		Role:         RoleUser,
	}
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Redacted returns a copy without credential material.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSkills trims skills and drops blanks and duplicates, keeping the first spelling seen.
func NormalizeSkills(skills []string) []string {
	trimmed := lo.FilterMap(skills, func(skill string, _ int) (string, bool) {
		skill = strings.TrimSpace(skill)
		return skill, skill != ""
	})
	return lo.UniqBy(trimmed, strings.ToLower)
}

type VerificationFilter string

const (
	FilterAllUsers      VerificationFilter = "all"
	FilterVerifiedUsers VerificationFilter = "verified"
	FilterPendingUsers  VerificationFilter = "pending"
)

func ToVerificationFilter(s string) (VerificationFilter, error) {
	switch s {
	case "", string(FilterAllUsers):
		return FilterAllUsers, nil
	case string(FilterVerifiedUsers):
		return FilterVerifiedUsers, nil
	case string(FilterPendingUsers):
		return FilterPendingUsers, nil
	default:
		return "", apperrors.NewValidationError("filter must be one of all, verified, pending")
	}
}

type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	VerifiedUsers int64 `json:"verifiedUsers"`
	PendingUsers  int64 `json:"pendingUsers"`
}
