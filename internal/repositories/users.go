package repositories

import (
	"context"
	"github.com/google/uuid"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Add stores a new user. An already registered email is a conflict.
func (repo *Users) Add(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewConflictError("email %s is already registered", user.Email)
		}
		return tx.Create(user).Error
	})
	if isUniqueViolation(err) {
		return apperrors.NewConflictError("email %s is already registered", user.Email)
	}
	return err
}

func (repo *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findUser(repo.db.WithContext(ctx), "id = ?", id)
}

func (repo *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findUser(repo.db.WithContext(ctx), "email = ?", models.NormalizeEmail(email))
}

func (repo *Users) Get(ctx context.Context, filter models.VerificationFilter) ([]models.User, error) {
	query := repo.db.WithContext(ctx).Model(&models.User{})
	switch filter {
	case models.FilterVerifiedUsers:
		query = query.Where("is_verified = ?", true)
	case models.FilterPendingUsers:
		query = query.Where("is_verified = ?", false)
	}

	users := make([]models.User, 0)
	if err := query.Order("rowid").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *Users) SetVerified(ctx context.Context, id string, verified bool) (*models.User, error) {
	var user *models.User

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(tx, "id = ?", id); err != nil {
			return err
		}
		if err = tx.Model(&models.User{}).Where("id = ?", id).Update("is_verified", verified).Error; err != nil {
			return err
		}
		user.IsVerified = verified
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites the editable profile fields of the user.
func (repo *Users) UpdateProfile(ctx context.Context, user models.User) (*models.User, error) {
	var updated *models.User

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, "id = ?", user.ID); err != nil {
			return err
		}
		if err := tx.Model(&models.User{ID: user.ID}).
			Select("Name", "Location", "Skills", "TelegramChatID").
			Updates(&user).Error; err != nil {
			return err
		}

		var err error
		updated, err = findUser(tx, "id = ?", user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (repo *Users) Stats(ctx context.Context) (models.UserStats, error) {
	var stats models.UserStats
	err := repo.db.WithContext(ctx).Model(&models.User{}).
		Select("COUNT(*) AS total_users, " +
			"COALESCE(SUM(CASE WHEN is_verified THEN 1 ELSE 0 END), 0) AS verified_users, " +
			"COALESCE(SUM(CASE WHEN is_verified THEN 0 ELSE 1 END), 0) AS pending_users").
		Scan(&stats).Error
	return stats, err
}

func (repo *Users) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
