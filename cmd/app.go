package main

import (
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/httpapi"
	"github.com/maxaizer/hirenearby/internal/repositories"
	"github.com/maxaizer/hirenearby/internal/seed"
	"github.com/maxaizer/hirenearby/internal/services"
	log "github.com/sirupsen/logrus"
)

type app struct {
	db            *repositories.DbContext
	users         *repositories.CachedUsers
	jobs          *repositories.Jobs
	bids          *repositories.Bids
	notifications *repositories.Notifications
	bus           EventBus.Bus
}

var current *app

func openApp() (*app, error) {
	db, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("can't create db context: %w", err)
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't migrate db context: %w", err)
	}

	current = &app{
		db:            db,
		users:         repositories.NewCachedUsers(repositories.NewUsersRepository(db.DB), cfg.Auth.UserCacheTTL),
		jobs:          repositories.NewJobsRepository(db.DB),
		bids:          repositories.NewBidsRepository(db.DB),
		notifications: repositories.NewNotificationsRepository(db.DB),
		bus:           EventBus.New(),
	}
	return current, nil
}

func closeApp() {
	if current == nil {
		return
	}
	if err := current.db.Close(); err != nil {
		log.Errorf("failed to close database: %v", err)
	}
	current = nil
}

func (a *app) seeder() *seed.Seeder {
	return seed.NewSeeder(a.db.DB, cfg.Auth.BcryptCost)
}

func (a *app) services(notifications *services.NotificationsService) httpapi.Services {
	locks := services.NewJobLocks()
	tokens := services.NewTokenIssuer(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)

	return httpapi.Services{
		Auth:          services.NewAuthService(a.users, tokens, cfg.Auth.BcryptCost),
		Jobs:          services.NewJobsService(a.jobs, a.bus, locks),
		Bids:          services.NewBidsService(a.bids, a.jobs, a.users, a.bus, locks),
		Notifications: notifications,
		Admin:         services.NewAdminService(a.users, a.bus),
	}
}
