package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/events"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_Admin_RequiresAdminRole(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.addUser(t, "John Doe", "john@example.com")

	_, err := env.admin.ListUsers(ctx, user.ID, models.FilterAllUsers)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = env.admin.Stats(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = env.admin.VerifyUser(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func Test_Admin_VerificationFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.addAdmin(t)
	jane := env.addUser(t, "Jane Smith", "jane@example.com")
	mike := env.addUser(t, "Mike Johnson", "mike@example.com")

	pending, err := env.admin.ListUsers(ctx, admin.ID, models.FilterPendingUsers)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, user := range pending {
		assert.Empty(t, user.PasswordHash)
	}

	verified, err := env.admin.VerifyUser(ctx, admin.ID, jane.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	me, err := env.auth.GetUserByToken(ctx, mustIssue(t, env, jane.ID))
	require.NoError(t, err)
	assert.True(t, me.IsVerified)

	_, err = env.admin.RejectUser(ctx, admin.ID, mike.ID)
	require.NoError(t, err)
	_, err = env.admin.VerifyUser(ctx, admin.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stats, err := env.admin.Stats(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{TotalUsers: 3, VerifiedUsers: 2, PendingUsers: 1}, *stats)

	janeNotifications := env.notificationsOf(t, jane.ID)
	require.Len(t, janeNotifications, 1)
	assert.Equal(t, models.NotificationUserVerified, janeNotifications[0].Type)
	assert.Equal(t, "Your account has been verified by our admin team", janeNotifications[0].Message)

	mikeNotifications := env.notificationsOf(t, mike.ID)
	require.Len(t, mikeNotifications, 1)
	assert.Equal(t, models.NotificationUserRejected, mikeNotifications[0].Type)
}

type mockNotificationCreator struct {
	mock.Mock
}

func (m *mockNotificationCreator) Create(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, notification)
	created, _ := args.Get(0).(*models.Notification)
	return created, args.Error(1)
}

func Test_NotificationDispatcher_SwallowsFailures(t *testing.T) {
	bus := EventBus.New()
	creator := &mockNotificationCreator{}
	creator.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	dispatcher, err := NewNotificationDispatcher(bus, creator)
	require.NoError(t, err)

	job := models.Job{ID: "job-1", Title: "Plumbing Repair", PostedBy: "owner"}
	bid := models.Bid{ID: "bid-1", JobID: "job-1", BidderID: "bidder", BidderName: "Jane Smith", Amount: 120}
	assert.NotPanics(t, func() {
		bus.Publish(events.BidPlacedTopic, events.BidPlaced{Bid: bid, Job: job})
	})

	creator.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.UserID == "owner" && n.Type == models.NotificationBidReceived && *n.BidID == "bid-1"
	}))

	dispatcher.Stop()
	bus.Publish(events.BidAcceptedTopic, events.BidAccepted{Bid: bid, Job: job})
	creator.AssertNumberOfCalls(t, "Create", 1)
}

func mustIssue(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	token, err := env.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}
