package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"testing"
	"time"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Deliver(notification models.Notification) {
	m.Called(notification)
}

type testEnv struct {
	db            *repositories.DbContext
	users         *repositories.CachedUsers
	jobsRepo      *repositories.Jobs
	bidsRepo      *repositories.Bids
	bus           EventBus.Bus
	sink          *mockSink
	tokens        *TokenIssuer
	jobs          *JobsService
	bids          *BidsService
	notifications *NotificationsService
	auth          *AuthService
	admin         *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	env := &testEnv{
		db:       dbCtx,
		users:    repositories.NewCachedUsers(repositories.NewUsersRepository(dbCtx.DB), time.Minute),
		jobsRepo: repositories.NewJobsRepository(dbCtx.DB),
		bidsRepo: repositories.NewBidsRepository(dbCtx.DB),
		bus:      EventBus.New(),
		sink:     &mockSink{},
		tokens:   NewTokenIssuer("test-secret-with-enough-length", time.Hour),
	}
	env.sink.On("Deliver", mock.Anything).Return()

	locks := NewJobLocks()
	env.jobs = NewJobsService(env.jobsRepo, env.bus, locks)
	env.bids = NewBidsService(env.bidsRepo, env.jobsRepo, env.users, env.bus, locks)
	env.notifications = NewNotificationsService(repositories.NewNotificationsRepository(dbCtx.DB), env.sink)
	env.auth = NewAuthService(env.users, env.tokens, bcrypt.MinCost)
	env.admin = NewAdminService(env.users, env.bus)

	dispatcher, err := NewNotificationDispatcher(env.bus, env.notifications)
	require.NoError(t, err)
	t.Cleanup(dispatcher.Stop)

	return env
}

func (env *testEnv) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	result, err := env.auth.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "password123"})
	require.NoError(t, err)
	return &result.User
}

func (env *testEnv) addAdmin(t *testing.T) *models.User {
	t.Helper()
	admin := models.NewUser("Admin User", "admin@hirenearby.com", "hash", "", nil)
	admin.Role, admin.IsVerified = models.RoleAdmin, true
	require.NoError(t, env.users.Add(context.Background(), admin))
	return admin
}

func (env *testEnv) addJob(t *testing.T, ownerID, title, category string, budget BudgetInput) *models.Job {
	t.Helper()
	job, err := env.jobs.CreateJob(context.Background(), ownerID, CreateJobInput{
		Title:    title,
		Category: category,
		Location: "Downtown, City Center",
		Budget:   &budget,
	})
	require.NoError(t, err)
	return job
}

func (env *testEnv) notificationsOf(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := env.notifications.List(context.Background(), userID)
	require.NoError(t, err)
	return list
}

func fixed(min, max float64) BudgetInput {
	return BudgetInput{Type: string(models.BudgetFixed), Min: min, Max: max}
}
