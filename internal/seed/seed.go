package seed

import (
	"context"
	"fmt"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/repositories"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"time"
)

// Seeder fills the database with demo records. Every call runs in a single transaction, so a failed
// load leaves no partial data behind.
type Seeder struct {
	db         *gorm.DB
	bcryptCost int
	now        func() time.Time
}

func NewSeeder(db *gorm.DB, bcryptCost int) *Seeder {
	return &Seeder{
		db:         db,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type stores struct {
	users         *repositories.Users
	jobs          *repositories.Jobs
	bids          *repositories.Bids
	notifications *repositories.Notifications
}

func (s *Seeder) inTransaction(ctx context.Context, fn func(st stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(stores{
			users:         repositories.NewUsersRepository(tx),
			jobs:          repositories.NewJobsRepository(tx),
			bids:          repositories.NewBidsRepository(tx),
			notifications: repositories.NewNotificationsRepository(tx),
		})
	})
}

type demoUser struct {
	name, email, password, location string
	skills                          []string
	verified                        bool
	role                            models.Role
}

var demoUsers = []demoUser{
	{"John Doe", "john@example.com", "password123", "New York, NY", []string{"Plumbing", "Electrical"}, true, models.RoleUser},
	{"Admin User", "admin@hirenearby.com", "admin123", "San Francisco, CA", []string{"Management"}, true, models.RoleAdmin},
	{"Jane Smith", "jane@example.com", "password123", "Brooklyn, NY", []string{"Plumbing"}, true, models.RoleUser},
	{"Mike Johnson", "mike@example.com", "password123", "Queens, NY", []string{"Plumbing", "Carpentry"}, false, models.RoleUser},
}

// demoHire is the bid accepted on a demo job that is past the open status.
type demoHire struct {
	bidderEmail string
	amount      float64
	message     string
}

type demoJob struct {
	title, description, category, location string
	budget                                  models.Budget
	age                                     time.Duration
	status                                  models.JobStatus
	urgent                                  bool
	hire                                    *demoHire
}

var demoJobs = []demoJob{
	{"Plumbing Repair - Kitchen Sink", "Need experienced plumber to fix leaking kitchen sink. Urgent repair needed.",
		"Home Services", "Downtown, City Center", models.FixedBudget(75, 150), 2 * time.Hour, models.JobOpen, true, nil},
	{"Logo Design for Startup", "Looking for creative graphic designer to create modern logo for tech startup.",
		"Design", "Remote", models.FixedBudget(200, 500), 24 * time.Hour, models.JobInProgress, false,
		&demoHire{"jane@example.com", 350, "Portfolio of 40+ startup logos, three concepts in a week."}},
	{"House Cleaning Service", "Weekly house cleaning service needed for 3-bedroom home.",
		"Cleaning", "Suburbs, North District", models.FixedBudget(100, 200), 3 * time.Hour, models.JobCompleted, false,
		&demoHire{"mike@example.com", 150, "Eco-friendly supplies included."}},
	{"Website Development", "Full-stack web development for e-commerce platform. React/Node.js preferred.",
		"Development", "Downtown Tech Hub", models.FixedBudget(2000, 5000), 5 * 24 * time.Hour, models.JobOpen, false, nil},
	{"Garden Landscaping", "Complete backyard landscaping including lawn, plants, and decorative stones.",
		"Gardening", "Westside Residential", models.FixedBudget(800, 1500), 7 * 24 * time.Hour, models.JobInProgress, false,
		&demoHire{"mike@example.com", 1200, "Landscaping crew of four, two weeks start to finish."}},
}

// SeedDemoData loads the demo accounts, jobs, bids and notifications into an empty database.
// It reports false and does nothing when any user already exists.
func (s *Seeder) SeedDemoData(ctx context.Context) (bool, error) {
	seeded := false
	err := s.inTransaction(ctx, func(st stores) error {
		count, err := st.users.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			log.Debugf("database already has %d users, skipping demo data", count)
			return nil
		}

		if err = s.loadDemoData(ctx, st); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

func (s *Seeder) loadDemoData(ctx context.Context, st stores) error {
	users := make(map[string]*models.User, len(demoUsers))
	for _, demo := range demoUsers {
		user, err := s.addUser(ctx, st, demo)
		if err != nil {
			return err
		}
		users[demo.email] = user
	}
	owner := users["john@example.com"]

	jobs := make([]*models.Job, 0, len(demoJobs))
	for _, demo := range demoJobs {
		job := models.NewJob(owner.ID, demo.title, demo.description, demo.category, demo.location, demo.budget, demo.urgent)
		job.PostedAt = s.now().Add(-demo.age)
		if err := st.jobs.Add(ctx, job); err != nil {
			return fmt.Errorf("failed to add job %q: %w", demo.title, err)
		}
		if demo.hire != nil {
			if err := s.hire(ctx, st, job, users[demo.hire.bidderEmail], *demo.hire); err != nil {
				return err
			}
		}
		if err := s.advance(ctx, st, job, demo.status); err != nil {
			return err
		}
		jobs = append(jobs, job)
	}
	plumbing := jobs[0]

	jane, mike := users["jane@example.com"], users["mike@example.com"]
	janeBid := models.NewBid(plumbing.ID, jane.ID, jane.Name, 120,
		"I have 10+ years of plumbing experience. Can start immediately.")
	mikeBid := models.NewBid(plumbing.ID, mike.ID, mike.Name, 100,
		"Local plumber with excellent reviews. Available today.")
	for _, bid := range []*models.Bid{janeBid, mikeBid} {
		if _, err := st.bids.Place(ctx, bid); err != nil {
			return fmt.Errorf("failed to place bid of %s: %w", bid.BidderName, err)
		}
	}

	notifications := []models.Notification{
		{
			UserID:    owner.ID,
			Type:      models.NotificationUserVerified,
			Title:     "Account Verified",
			Message:   "Your account has been verified by our admin team",
			Read:      true,
			CreatedAt: s.now().Add(-24 * time.Hour),
		},
		{
			UserID:    owner.ID,
			Type:      models.NotificationBidReceived,
			Title:     "New Bid Received",
			Message:   fmt.Sprintf("%s placed a bid of %s on your Plumbing Repair job", jane.Name, models.FormatAmount(janeBid.Amount)),
			CreatedAt: s.now().Add(-30 * time.Minute),
			JobID:     &plumbing.ID,
			BidID:     &janeBid.ID,
		},
	}
	for i := range notifications {
		if err := st.notifications.Add(ctx, &notifications[i]); err != nil {
			return fmt.Errorf("failed to add notification: %w", err)
		}
	}

	log.Infof("demo data loaded: %d users, %d jobs", len(users), len(jobs))
	return nil
}

// hire places the bid and accepts it, which moves the job to in_progress the same way an owner would.
func (s *Seeder) hire(ctx context.Context, st stores, job *models.Job, bidder *models.User, demo demoHire) error {
	if bidder == nil {
		return fmt.Errorf("unknown demo bidder %s", demo.bidderEmail)
	}

	bid := models.NewBid(job.ID, bidder.ID, bidder.Name, demo.amount, demo.message)
	if _, err := st.bids.Place(ctx, bid); err != nil {
		return fmt.Errorf("failed to place bid on %q: %w", job.Title, err)
	}
	decision, err := st.bids.Accept(ctx, bid.ID)
	if err != nil {
		return fmt.Errorf("failed to accept bid on %q: %w", job.Title, err)
	}
	*job = decision.Job
	return nil
}

func (s *Seeder) advance(ctx context.Context, st stores, job *models.Job, status models.JobStatus) error {
	if job.Status == status {
		return nil
	}
	updated, _, err := st.jobs.UpdateStatus(ctx, job.ID, status)
	if err != nil {
		return fmt.Errorf("failed to move %q to %s: %w", job.Title, status, err)
	}
	*job = *updated
	return nil
}

func (s *Seeder) addUser(ctx context.Context, st stores, demo demoUser) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demo.password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password of %s: %w", demo.email, err)
	}

	user := models.NewUser(demo.name, demo.email, string(hash), demo.location, demo.skills)
	user.IsVerified = demo.verified
	user.Role = demo.role
	if err := st.users.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to add user %s: %w", demo.email, err)
	}
	return user, nil
}
