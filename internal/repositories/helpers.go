package repositories

import (
	"errors"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
	"strings"
)

func findJob(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("job %s not found", id)
		}
		return nil, err
	}
	return &job, nil
}

func findBid(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := db.First(&bid, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("bid %s not found", id)
		}
		return nil, err
	}
	return &bid, nil
}

func findUser(db *gorm.DB, query string, arg any) (*models.User, error) {
	var user models.User
	if err := db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s as a literal substring.
// Use it with "LOWER(column) LIKE ? ESCAPE '\'".
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
