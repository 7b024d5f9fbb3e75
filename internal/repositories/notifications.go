package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	return repo.db.WithContext(ctx).Create(notification).Error
}

// GetByUser returns the user's notifications, newest first.
func (repo *Notifications) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("rowid DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read. Notifications of other users are reported
// as missing.
func (repo *Notifications) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var notification models.Notification

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("notification %s not found", id)
			}
			return err
		}
		if notification.Read {
			return nil
		}

		notification.Read = true
		return tx.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (repo *Notifications) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (repo *Notifications) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
