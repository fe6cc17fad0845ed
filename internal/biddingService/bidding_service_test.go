package bidding

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AimalShah/BarterDash-sub004/internal/auction"
	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	"github.com/AimalShah/BarterDash-sub004/internal/events"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/internal/repository"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

var baseTime = time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)

var testRules = auction.Rules{
	AntiSnipeWindow: 15 * time.Second,
	ExtensionStep:   15 * time.Second,
	MaxExtensions:   2,
}

// newTestService wires a service over the in-memory repo with a controllable
// clock. Events published during the test are captured in order.
func newTestService(t *testing.T) (*Service, *repository.MemoryRepo, *eventRecorder) {
	t.Helper()

	repo := repository.NewMemoryRepo()
	bus := events.NewBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec.record)

	svc := NewService(repo, bus, testRules)
	svc.now = func() time.Time { return baseTime }
	return svc, repo, rec
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// seedActiveAuction stores an active $10 start / $5 increment auction
func seedActiveAuction(t *testing.T, repo *repository.MemoryRepo, mutate func(a *model.Auction)) model.Auction {
	t.Helper()

	a := model.Auction{
		AuctionID:    utils.GenerateID(),
		ProductID:    "prod1",
		SellerID:     "seller1",
		StreamID:     "stream1",
		Status:       model.AuctionActive,
		Mode:         model.ModeStandard,
		StartingBid:  decimal.NewFromInt(10),
		MinIncrement: decimal.NewFromInt(5),
		CurrentBid:   decimal.NewFromInt(10),
		StartedAt:    baseTime,
		EndsAt:       baseTime.Add(time.Minute),
	}
	if mutate != nil {
		mutate(&a)
	}
	created, err := repo.CreateAuction(a)
	require.NoError(t, err)
	return created
}

func TestService_PlaceBid_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		auctionID string
		bidderID  string
		amount    decimal.Decimal
	}{
		{"empty_auctionID", "", "bidder1", decimal.NewFromInt(15)},
		{"empty_bidderID", "a1", "", decimal.NewFromInt(15)},
		{"zero_amount", "a1", "bidder1", decimal.Zero},
		{"negative_amount", "a1", "bidder1", decimal.NewFromInt(-5)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, _ := newTestService(t)
			_, err := svc.PlaceBid(tc.auctionID, tc.bidderID, tc.amount)
			require.True(t, errors.Is(err, auctionerrors.ErrInvalidBid))
		})
	}
}

func TestService_PlaceBid_UnknownAuction(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.PlaceBid("missing", "bidder1", decimal.NewFromInt(15))
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}

func TestService_PlaceBid_FirstBid(t *testing.T) {
	t.Parallel()

	svc, repo, rec := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	res, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(15))
	require.NoError(t, err)

	require.NotEmpty(t, res.Bid.BidID)
	_, parseErr := uuid.Parse(res.Bid.BidID)
	require.NoError(t, parseErr, "BidID should be a valid UUID")
	require.Equal(t, model.BidAccepted, res.Bid.Outcome)
	require.Equal(t, model.SourceUser, res.Bid.Source)

	require.True(t, res.Auction.CurrentBid.Equal(decimal.NewFromInt(15)))
	require.Equal(t, "bidder1", *res.Auction.CurrentBidderID)
	require.Equal(t, 1, res.Auction.BidCount)
	require.False(t, res.Extended)
	require.False(t, res.Buyout)

	ledger, err := repo.BidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, model.BidAccepted, ledger[0].Outcome)

	require.Equal(t, []events.Type{events.BidAccepted}, rec.types())
}

func TestService_PlaceBid_Rejections(t *testing.T) {
	t.Parallel()

	bidder := "bidder1"

	tests := []struct {
		name          string
		mutate        func(a *model.Auction)
		bidderID      string
		amount        decimal.Decimal
		expectedError error
		reason        string
	}{
		{
			name:          "below_min_increment",
			bidderID:      "bidder2",
			amount:        decimal.NewFromInt(14),
			expectedError: auctionerrors.ErrBidTooLow,
			reason:        "bid_too_low",
		},
		{
			name:          "exactly_current_bid",
			bidderID:      "bidder2",
			amount:        decimal.NewFromInt(10),
			expectedError: auctionerrors.ErrBidTooLow,
			reason:        "bid_too_low",
		},
		{
			name: "already_high_bidder",
			mutate: func(a *model.Auction) {
				a.CurrentBid = decimal.NewFromInt(15)
				a.CurrentBidderID = &bidder
			},
			bidderID:      bidder,
			amount:        decimal.NewFromInt(25),
			expectedError: auctionerrors.ErrAlreadyHighBidder,
			reason:        "already_high_bidder",
		},
		{
			name:          "auction_ended",
			mutate:        func(a *model.Auction) { a.Status = model.AuctionEnded },
			bidderID:      "bidder2",
			amount:        decimal.NewFromInt(15),
			expectedError: auctionerrors.ErrAuctionNotActive,
			reason:        "auction_not_active",
		},
		{
			name:          "auction_sold",
			mutate:        func(a *model.Auction) { a.Status = model.AuctionSold },
			bidderID:      "bidder2",
			amount:        decimal.NewFromInt(15),
			expectedError: auctionerrors.ErrAuctionNotActive,
			reason:        "auction_not_active",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, repo, _ := newTestService(t)
			a := seedActiveAuction(t, repo, tc.mutate)
			before, err := repo.GetAuction(a.AuctionID)
			require.NoError(t, err)

			_, err = svc.PlaceBid(a.AuctionID, tc.bidderID, tc.amount)
			require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)

			// The auction row is untouched, but the attempt is on the ledger.
			after, err := repo.GetAuction(a.AuctionID)
			require.NoError(t, err)
			require.Equal(t, before, after)

			ledger, err := repo.BidsForAuction(a.AuctionID)
			require.NoError(t, err)
			require.Len(t, ledger, 1)
			require.Equal(t, model.BidRejected, ledger[0].Outcome)
			require.Equal(t, tc.reason, ledger[0].Reason)
			require.Equal(t, tc.bidderID, ledger[0].BidderID)
		})
	}
}

func TestService_PlaceBid_Buyout(t *testing.T) {
	t.Parallel()

	svc, repo, rec := newTestService(t)
	buyout := decimal.NewFromInt(100)
	a := seedActiveAuction(t, repo, func(a *model.Auction) { a.BuyoutPrice = &buyout })

	// A standing rule must be retired when the buyout closes the auction.
	_, err := repo.SaveAutoBid(model.AutoBid{
		RuleID: "r1", AuctionID: a.AuctionID, BidderID: "bidder2",
		Ceiling: decimal.NewFromInt(40), Active: true, CreatedAt: baseTime,
	})
	require.NoError(t, err)

	res, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, res.Buyout)
	require.Equal(t, model.AuctionSoldViaBuyout, res.Auction.Status)
	require.True(t, res.Auction.CurrentBid.Equal(buyout))
	require.Equal(t, "bidder1", *res.Auction.CurrentBidderID)

	rules, err := repo.AutoBidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.False(t, rules[0].Active)
	require.Equal(t, auctionerrors.CauseAuctionEnded, rules[0].DeactivatedCause)

	require.Equal(t, []events.Type{events.BidAccepted, events.AuctionSold}, rec.types())

	// Nothing lands after a buyout.
	_, err = svc.PlaceBid(a.AuctionID, "bidder3", decimal.NewFromInt(200))
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotActive))
}

func TestService_PlaceBid_OverBuyoutStillCloses(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	buyout := decimal.NewFromInt(100)
	a := seedActiveAuction(t, repo, func(a *model.Auction) { a.BuyoutPrice = &buyout })

	res, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(120))
	require.NoError(t, err)
	require.True(t, res.Buyout)
	require.Equal(t, model.AuctionSoldViaBuyout, res.Auction.Status)
	require.True(t, res.Auction.CurrentBid.Equal(decimal.NewFromInt(120)))
}

func TestService_PlaceBid_ExpiredAuctionEndsLazily(t *testing.T) {
	t.Parallel()

	svc, repo, rec := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	svc.now = func() time.Time { return a.EndsAt.Add(time.Second) }

	_, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(15))
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotActive))

	got, err := repo.GetAuction(a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionEnded, got.Status, "a late bid must flip the expired auction to ended")

	ledger, err := repo.BidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, "auction_not_active", ledger[0].Reason)

	require.Equal(t, []events.Type{events.AuctionEnded}, rec.types())
}

func TestService_PlaceBid_AntiSnipeExtension(t *testing.T) {
	t.Parallel()

	t.Run("extends_inside_window_until_cap", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newTestService(t)
		a := seedActiveAuction(t, repo, nil)
		originalEnd := a.EndsAt

		// Land each bid 10s before the current end; the cap is 2 extensions.
		amount := decimal.NewFromInt(15)
		for i := 0; i < 3; i++ {
			current, err := repo.GetAuction(a.AuctionID)
			require.NoError(t, err)
			svc.now = func() time.Time { return current.EndsAt.Add(-10 * time.Second) }

			res, err := svc.PlaceBid(a.AuctionID, []string{"b1", "b2", "b3"}[i], amount)
			require.NoError(t, err)
			require.Equal(t, i < testRules.MaxExtensions, res.Extended)
			amount = amount.Add(a.MinIncrement)
		}

		final, err := repo.GetAuction(a.AuctionID)
		require.NoError(t, err)
		require.Equal(t, testRules.MaxExtensions, final.ExtensionCount)
		require.Equal(t, originalEnd.Add(2*testRules.ExtensionStep), final.EndsAt)
	})

	t.Run("no_extension_outside_window", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newTestService(t)
		a := seedActiveAuction(t, repo, nil)

		res, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(15))
		require.NoError(t, err)
		require.False(t, res.Extended)
		require.Equal(t, a.EndsAt, res.Auction.EndsAt)
	})

	t.Run("sudden_death_never_extends", func(t *testing.T) {
		t.Parallel()

		svc, repo, _ := newTestService(t)
		a := seedActiveAuction(t, repo, func(a *model.Auction) { a.Mode = model.ModeSuddenDeath })
		svc.now = func() time.Time { return a.EndsAt.Add(-5 * time.Second) }

		res, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(15))
		require.NoError(t, err)
		require.False(t, res.Extended)
		require.Equal(t, a.EndsAt, res.Auction.EndsAt)
		require.Equal(t, 0, res.Auction.ExtensionCount)
	})
}

func TestService_PlaceBid_ConcurrentSameAmount(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	const bidders = 20
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bidderID := "bidder" + string(rune('A'+n))
			_, err := svc.PlaceBid(a.AuctionID, bidderID, amount)
			if err != nil &&
				!errors.Is(err, auctionerrors.ErrBidSuperseded) &&
				!errors.Is(err, auctionerrors.ErrBidTooLow) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	// Exactly one of the identical bids may be accepted; the rest must be on
	// the ledger as rejections.
	ledger, err := repo.BidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Len(t, ledger, bidders)

	accepted := 0
	for _, row := range ledger {
		if row.Outcome == model.BidAccepted {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)

	final, err := repo.GetAuction(a.AuctionID)
	require.NoError(t, err)
	require.True(t, final.CurrentBid.Equal(amount))
	require.Equal(t, 1, final.BidCount)
}

func TestService_PlaceBid_HighBidNeverDecreases(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	high := a.CurrentBid
	bids := []struct {
		bidder string
		amount int64
	}{
		{"b1", 15}, {"b2", 12}, {"b2", 20}, {"b3", 18}, {"b3", 40}, {"b1", 45},
	}
	for _, bid := range bids {
		_, _ = svc.PlaceBid(a.AuctionID, bid.bidder, decimal.NewFromInt(bid.amount))

		current, err := repo.GetAuction(a.AuctionID)
		require.NoError(t, err)
		require.True(t, current.CurrentBid.GreaterThanOrEqual(high),
			"high bid decreased from %s to %s", high, current.CurrentBid)
		high = current.CurrentBid
	}
	require.True(t, high.Equal(decimal.NewFromInt(45)))
}

func TestService_PlaceBid_PersistenceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionStore(ctrl)
	svc := NewService(mockRepo, events.NewBus(), testRules)
	svc.now = func() time.Time { return baseTime }

	a := model.Auction{
		AuctionID:    "a1",
		Status:       model.AuctionActive,
		CurrentBid:   decimal.NewFromInt(10),
		MinIncrement: decimal.NewFromInt(5),
		EndsAt:       baseTime.Add(time.Minute),
		Version:      1,
	}
	mockRepo.EXPECT().GetAuction("a1").Return(a, nil)
	mockRepo.EXPECT().CompareAndSwapAuction(gomock.Any()).Return(model.Auction{}, errors.New("connection refused"))

	_, err := svc.PlaceBid("a1", "bidder1", decimal.NewFromInt(15))
	require.True(t, errors.Is(err, auctionerrors.ErrPersistenceUnavailable))
}

func TestService_PlaceBid_LedgerWriteFailureTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionStore(ctrl)
	svc := NewService(mockRepo, events.NewBus(), testRules)
	svc.now = func() time.Time { return baseTime }

	a := model.Auction{
		AuctionID:    "a1",
		Status:       model.AuctionActive,
		CurrentBid:   decimal.NewFromInt(10),
		MinIncrement: decimal.NewFromInt(5),
		EndsAt:       baseTime.Add(time.Minute),
		Version:      1,
	}
	bidder := "bidder1"
	committed := a
	committed.CurrentBid = decimal.NewFromInt(15)
	committed.CurrentBidderID = &bidder
	committed.BidCount = 1
	committed.Version = 2

	mockRepo.EXPECT().GetAuction("a1").Return(a, nil)
	mockRepo.EXPECT().CompareAndSwapAuction(gomock.Any()).Return(committed, nil)
	mockRepo.EXPECT().AppendBid(gomock.Any()).Return(errors.New("ledger write failed"))
	mockRepo.EXPECT().GetAuction("a1").Return(committed, nil).AnyTimes()
	mockRepo.EXPECT().AutoBidsForAuction("a1").Return([]model.AutoBid{}, nil).AnyTimes()

	// The auction row committed, so the bid stands even though the ledger
	// write failed.
	res, err := svc.PlaceBid("a1", bidder, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.True(t, res.Auction.CurrentBid.Equal(decimal.NewFromInt(15)))
}

func TestService_GetAuction(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	got, err := svc.GetAuction(a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, a, got)

	_, err = svc.GetAuction("")
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidBid))

	_, err = svc.GetAuction("missing")
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))
}

func TestService_GetBidsForAuction(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	a := seedActiveAuction(t, repo, nil)

	_, err := svc.PlaceBid(a.AuctionID, "bidder1", decimal.NewFromInt(15))
	require.NoError(t, err)
	_, err = svc.PlaceBid(a.AuctionID, "bidder2", decimal.NewFromInt(12))
	require.True(t, errors.Is(err, auctionerrors.ErrBidTooLow))

	bids, err := svc.GetBidsForAuction(a.AuctionID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, model.BidAccepted, bids[0].Outcome)
	require.Equal(t, model.BidRejected, bids[1].Outcome)

	_, err = svc.GetBidsForAuction("")
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidBid))
}
