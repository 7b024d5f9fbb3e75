package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func Test_AcceptBid_CollapsesSiblingsAndNotifies(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	bidderA := env.addUser(t, "Jane Smith", "jane@example.com")
	bidderB := env.addUser(t, "Mike Johnson", "mike@example.com")
	job := env.addJob(t, owner.ID, "Plumbing Repair", "Home Services", fixed(75, 150))

	a, err := env.bids.PlaceBid(ctx, bidderA.ID, job.ID, PlaceBidInput{Amount: 120, Message: "Can start today"})
	require.NoError(t, err)
	assert.Equal(t, models.BidPending, a.Status)
	assert.Equal(t, "Jane Smith", a.BidderName)
	b, err := env.bids.PlaceBid(ctx, bidderB.ID, job.ID, PlaceBidInput{Amount: 100})
	require.NoError(t, err)

	accepted, err := env.bids.AcceptBid(ctx, owner.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BidAccepted, accepted.Status)

	bids, err := env.bids.ListBidsForJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, models.BidAccepted, bids[0].Status)
	assert.Equal(t, b.ID, bids[1].ID)
	assert.Equal(t, models.BidRejected, bids[1].Status)

	stored, err := env.jobs.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.BidsCount)
	assert.Equal(t, job.Title, stored.Title)
	assert.Equal(t, job.Budget, stored.Budget)
	assert.Equal(t, job.PostedBy, stored.PostedBy)
	assert.Equal(t, models.JobInProgress, stored.Status)
	require.NotNil(t, stored.AcceptedBidID)
	assert.Equal(t, a.ID, *stored.AcceptedBidID)

	ownerNotifications := env.notificationsOf(t, owner.ID)
	require.Len(t, ownerNotifications, 2)
	assert.Equal(t, models.NotificationBidReceived, ownerNotifications[1].Type)
	assert.Equal(t, "Jane Smith placed a bid of $120 on your Plumbing Repair job", ownerNotifications[1].Message)

	aNotifications := env.notificationsOf(t, bidderA.ID)
	require.Len(t, aNotifications, 1)
	assert.Equal(t, models.NotificationBidAccepted, aNotifications[0].Type)
	require.NotNil(t, aNotifications[0].BidID)
	assert.Equal(t, a.ID, *aNotifications[0].BidID)

	bNotifications := env.notificationsOf(t, bidderB.ID)
	require.Len(t, bNotifications, 1)
	assert.Equal(t, models.NotificationBidRejected, bNotifications[0].Type)

	env.sink.AssertNumberOfCalls(t, "Deliver", 4)
	env.sink.AssertCalled(t, "Deliver", mock.MatchedBy(func(n models.Notification) bool {
		return n.UserID == bidderA.ID && n.Type == models.NotificationBidAccepted
	}))
}

func Test_PlaceBid_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	bidder := env.addUser(t, "Jane Smith", "jane@example.com")
	job := env.addJob(t, owner.ID, "Plumbing Repair", "Home Services", fixed(75, 150))

	_, err := env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 151})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = env.bids.PlaceBid(ctx, owner.ID, job.ID, PlaceBidInput{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = env.bids.PlaceBid(ctx, bidder.ID, "missing", PlaceBidInput{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.jobs.UpdateJobStatus(ctx, owner.ID, job.ID, models.JobCancelled)
	require.NoError(t, err)
	_, err = env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := env.jobs.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.BidsCount)
	assert.Empty(t, env.notificationsOf(t, owner.ID))
}

func Test_DecideBid_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	bidder := env.addUser(t, "Jane Smith", "jane@example.com")
	job := env.addJob(t, owner.ID, "Plumbing Repair", "Home Services", fixed(75, 150))
	bid, err := env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 100})
	require.NoError(t, err)

	_, err = env.bids.AcceptBid(ctx, bidder.ID, bid.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = env.bids.RejectBid(ctx, bidder.ID, bid.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = env.bids.AcceptBid(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func Test_RejectBid_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	bidder := env.addUser(t, "Jane Smith", "jane@example.com")
	job := env.addJob(t, owner.ID, "Plumbing Repair", "Home Services", fixed(75, 150))
	bid, err := env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 100})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rejected, err := env.bids.RejectBid(ctx, owner.ID, bid.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BidRejected, rejected.Status)
	}
	assert.Len(t, env.notificationsOf(t, bidder.ID), 1)

	_, err = env.bids.AcceptBid(ctx, owner.ID, bid.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func Test_AcceptBid_ConcurrentAcceptsKeepOneAccepted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	job := env.addJob(t, owner.ID, "Logo Design", "Design", fixed(200, 500))

	var bidIDs []string
	for i := 0; i < 8; i++ {
		bidder := env.addUser(t, fmt.Sprintf("Bidder %d", i), fmt.Sprintf("bidder%d@example.com", i))
		bid, err := env.bids.PlaceBid(ctx, bidder.ID, job.ID, PlaceBidInput{Amount: 200 + float64(i)})
		require.NoError(t, err)
		bidIDs = append(bidIDs, bid.ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for _, id := range bidIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := env.bids.AcceptBid(ctx, owner.ID, id)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, apperrors.ErrConflict) {
				conflicts++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, len(bidIDs)-1, conflicts)

	bids, err := env.bids.ListBidsForJob(ctx, job.ID)
	require.NoError(t, err)
	accepted := 0
	for _, bid := range bids {
		assert.NotEqual(t, models.BidPending, bid.Status)
		if bid.Status == models.BidAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func Test_ListMyBids(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.addUser(t, "John Doe", "john@example.com")
	bidder := env.addUser(t, "Jane Smith", "jane@example.com")
	first := env.addJob(t, owner.ID, "Plumbing Repair", "Home Services", fixed(75, 150))
	second := env.addJob(t, owner.ID, "Logo Design", "Design", fixed(200, 500))

	_, err := env.bids.PlaceBid(ctx, bidder.ID, first.ID, PlaceBidInput{Amount: 100})
	require.NoError(t, err)
	_, err = env.bids.PlaceBid(ctx, bidder.ID, second.ID, PlaceBidInput{Amount: 300})
	require.NoError(t, err)

	mine, err := env.bids.ListMyBids(ctx, bidder.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].JobID)
	assert.Equal(t, second.ID, mine[1].JobID)

	_, err = env.bids.ListBidsForJob(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
