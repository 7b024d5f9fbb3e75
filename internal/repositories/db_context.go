package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" databases alive across calls.
	sqlDB.SetMaxOpenConns(1)

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", models.User{}},
		{"Job", models.Job{}},
		{"Bid", models.Bid{}},
		{"Notification", models.Notification{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_one_accepted_per_job ON bids (job_id) " +
		"WHERE status = 'accepted'").Error; err != nil {
		return fmt.Errorf("failed to create accepted bid index: %w", err)
	}

	if err := c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_created " +
		"ON notifications (user_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create notifications index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
