package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
)

func newTestAuction(id, streamID string) model.Auction {
	return model.Auction{
		AuctionID:    id,
		ProductID:    "prod-" + id,
		SellerID:     "seller1",
		StreamID:     streamID,
		Status:       model.AuctionActive,
		Mode:         model.ModeStandard,
		StartingBid:  decimal.NewFromInt(10),
		MinIncrement: decimal.NewFromInt(5),
		CurrentBid:   decimal.NewFromInt(10),
		EndsAt:       time.Now().Add(time.Minute),
	}
}

func TestMemoryRepo_CreateAndGetAuction(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	created, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)
	require.Equal(t, int64(1), created.Version, "new rows start at version 1")

	got, err := repo.GetAuction("a1")
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.CreateAuction(newTestAuction("a1", "s1"))
	require.Error(t, err, "duplicate auction id must be rejected")

	_, err = repo.GetAuction("missing")
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}

func TestMemoryRepo_CompareAndSwapAuction(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	created, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)

	// First writer wins and bumps the version.
	updated := created
	updated.CurrentBid = decimal.NewFromInt(15)
	committed, err := repo.CompareAndSwapAuction(updated)
	require.NoError(t, err)
	require.Equal(t, int64(2), committed.Version)

	// Second writer still holds the old version and must lose.
	stale := created
	stale.CurrentBid = decimal.NewFromInt(20)
	_, err = repo.CompareAndSwapAuction(stale)
	require.True(t, errors.Is(err, auctionerrors.ErrStaleVersion))

	// The stored row reflects only the winner's write.
	got, err := repo.GetAuction("a1")
	require.NoError(t, err)
	require.True(t, got.CurrentBid.Equal(decimal.NewFromInt(15)))

	_, err = repo.CompareAndSwapAuction(newTestAuction("missing", "s1"))
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}

func TestMemoryRepo_CompareAndSwapAuction_Concurrent(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	created, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)

	const writers = 50
	var wins int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Every writer starts from the same snapshot; exactly one CAS may land.
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			attempt := created
			attempt.CurrentBid = decimal.NewFromInt(int64(100 + n))
			if _, err := repo.CompareAndSwapAuction(attempt); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, auctionerrors.ErrStaleVersion) {
				t.Errorf("unexpected CAS error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1), wins, "exactly one concurrent writer may win")

	got, err := repo.GetAuction("a1")
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Version)
}

func TestMemoryRepo_ActiveAuctionForStream(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	_, active, err := repo.ActiveAuctionForStream("s1")
	require.NoError(t, err)
	require.False(t, active)

	created, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)

	got, active, err := repo.ActiveAuctionForStream("s1")
	require.NoError(t, err)
	require.True(t, active)
	require.Equal(t, created.AuctionID, got.AuctionID)

	// An ended auction no longer counts.
	created.Status = model.AuctionEnded
	_, err = repo.CompareAndSwapAuction(created)
	require.NoError(t, err)

	_, active, err = repo.ActiveAuctionForStream("s1")
	require.NoError(t, err)
	require.False(t, active)
}

func TestMemoryRepo_BidLedger(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	_, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)

	err = repo.AppendBid(model.Bid{BidID: "b1", AuctionID: "missing"})
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))

	attempts := []model.Bid{
		{BidID: "b1", AuctionID: "a1", BidderID: "u1", Amount: decimal.NewFromInt(15), Outcome: model.BidAccepted, Source: model.SourceUser},
		{BidID: "b2", AuctionID: "a1", BidderID: "u2", Amount: decimal.NewFromInt(12), Outcome: model.BidRejected, Reason: "bid_too_low", Source: model.SourceUser},
		{BidID: "b3", AuctionID: "a1", BidderID: "u2", Amount: decimal.NewFromInt(20), Outcome: model.BidAccepted, Source: model.SourceAutoBid},
	}
	for _, b := range attempts {
		require.NoError(t, repo.AppendBid(b))
	}

	ledger, err := repo.BidsForAuction("a1")
	require.NoError(t, err)
	require.Equal(t, attempts, ledger, "ledger preserves append order, rejected rows included")

	// The returned slice is a copy; mutating it must not touch the ledger.
	ledger[0].Amount = decimal.NewFromInt(999)
	fresh, err := repo.BidsForAuction("a1")
	require.NoError(t, err)
	require.True(t, fresh[0].Amount.Equal(decimal.NewFromInt(15)))
}

func TestMemoryRepo_AutoBids(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	_, err := repo.CreateAuction(newTestAuction("a1", "s1"))
	require.NoError(t, err)

	rule := model.AutoBid{RuleID: "r1", AuctionID: "a1", BidderID: "u1", Ceiling: decimal.NewFromInt(50), Active: true}
	_, err = repo.SaveAutoBid(rule)
	require.NoError(t, err)

	// Saving the same RuleID replaces the row.
	rule.Ceiling = decimal.NewFromInt(80)
	_, err = repo.SaveAutoBid(rule)
	require.NoError(t, err)

	rules, err := repo.AutoBidsForAuction("a1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.True(t, rules[0].Ceiling.Equal(decimal.NewFromInt(80)))

	require.NoError(t, repo.DeactivateAutoBid("a1", "r1", auctionerrors.CauseCeilingExceeded))
	rules, err = repo.AutoBidsForAuction("a1")
	require.NoError(t, err)
	require.False(t, rules[0].Active)
	require.Equal(t, auctionerrors.CauseCeilingExceeded, rules[0].DeactivatedCause)

	err = repo.DeactivateAutoBid("a1", "missing", auctionerrors.CauseAuctionEnded)
	require.True(t, errors.Is(err, auctionerrors.ErrAutoBidNotFound))
}

func TestMemoryRepo_Streams(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	created, err := repo.CreateStream(model.Stream{StreamID: "s1", SellerID: "seller1", Title: "Card Break"})
	require.NoError(t, err)

	_, err = repo.CreateStream(created)
	require.Error(t, err, "duplicate stream id must be rejected")

	pin := "prod1"
	created.PinnedProductID = &pin
	updated, err := repo.UpdateStream(created)
	require.NoError(t, err)

	got, err := repo.GetStream("s1")
	require.NoError(t, err)
	require.Equal(t, updated, got)

	_, err = repo.GetStream("missing")
	require.True(t, errors.Is(err, auctionerrors.ErrStreamNotFound))

	_, err = repo.UpdateStream(model.Stream{StreamID: "missing"})
	require.True(t, errors.Is(err, auctionerrors.ErrStreamNotFound))
}

func TestMemoryRepo_Queue(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	_, err := repo.CreateStream(model.Stream{StreamID: "s1", SellerID: "seller1", Title: "Card Break"})
	require.NoError(t, err)

	_, err = repo.AddQueueItem(model.QueueItem{StreamID: "missing", ProductID: "p1"})
	require.True(t, errors.Is(err, auctionerrors.ErrStreamNotFound))

	for i := 0; i < 3; i++ {
		_, err := repo.AddQueueItem(model.QueueItem{
			StreamID:   "s1",
			ProductID:  fmt.Sprintf("p%d", i),
			OrderIndex: i,
			Status:     model.QueueUpcoming,
		})
		require.NoError(t, err)
	}

	_, err = repo.AddQueueItem(model.QueueItem{StreamID: "s1", ProductID: "p0"})
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidQueueOp), "a product can be queued once")

	// Reordering via OrderIndex is reflected by QueueForStream.
	item, err := repo.GetQueueItem("s1", "p2")
	require.NoError(t, err)
	item.OrderIndex = -1
	_, err = repo.UpdateQueueItem(item)
	require.NoError(t, err)

	queue, err := repo.QueueForStream("s1")
	require.NoError(t, err)
	require.Len(t, queue, 3)
	require.Equal(t, "p2", queue[0].ProductID)

	_, err = repo.GetQueueItem("s1", "missing")
	require.True(t, errors.Is(err, auctionerrors.ErrQueueItemNotFound))

	_, err = repo.UpdateQueueItem(model.QueueItem{StreamID: "s1", ProductID: "missing"})
	require.True(t, errors.Is(err, auctionerrors.ErrQueueItemNotFound))
}
