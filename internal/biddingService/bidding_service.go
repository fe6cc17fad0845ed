package bidding

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AimalShah/BarterDash-sub004/internal/auction"
	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	"github.com/AimalShah/BarterDash-sub004/internal/events"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/internal/repository"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// Service is the bid acceptor: it serializes concurrent submissions against
// one auction through a version-checked conditional update, keeps the ledger,
// and drives the auto-bid cascade after every accepted bid.
type Service struct {
	store repository.AuctionStore
	bus   *events.Bus
	rules auction.Rules

	// now is swapped out by tests to control the clock
	now func() time.Time
}

// NewService creates a bidding service instance
func NewService(store repository.AuctionStore, bus *events.Bus, rules auction.Rules) *Service {
	return &Service{
		store: store,
		bus:   bus,
		rules: rules,
		now:   time.Now,
	}
}

// Result is what a submitter observes: their accepted bid, the auction after
// the full auto-bid cascade, and whether the end time was extended.
type Result struct {
	Bid      model.Bid
	Auction  model.Auction
	Extended bool
	Buyout   bool
}

// PlaceBid validates and records a user's bid on an auction. On acceptance
// the auto-bid cascade runs synchronously, so the returned auction reflects
// the final standing bid.
func (s *Service) PlaceBid(auctionID, bidderID string, amount decimal.Decimal) (Result, error) {
	res, err := s.submit(auctionID, bidderID, amount, model.SourceUser)
	if err != nil {
		return Result{}, err
	}

	if !res.Buyout {
		s.runCascade(auctionID)
		if final, ferr := s.store.GetAuction(auctionID); ferr == nil {
			res.Auction = final
		}
	}
	return res, nil
}

// submit is the single acceptance path shared by human and synthesized bids.
func (s *Service) submit(auctionID, bidderID string, amount decimal.Decimal, source model.BidSource) (Result, error) {
	if auctionID == "" || bidderID == "" {
		return Result{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return Result{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return Result{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	now := s.now()

	// Expiry is checked against the stored row, not just at request entry; a
	// bid processed after the clock ran out must never land.
	if auction.Expired(a, now) {
		s.expire(a)
		return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrAuctionNotActive)
	}
	if a.Status != model.AuctionActive {
		return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrAuctionNotActive)
	}

	minRequired := a.CurrentBid.Add(a.MinIncrement)
	if amount.LessThan(minRequired) {
		return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrBidTooLow)
	}

	if a.CurrentBidderID != nil && *a.CurrentBidderID == bidderID {
		return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrAlreadyHighBidder)
	}

	// Buyout short-circuits ordinary placement and ends the auction.
	if a.BuyoutPrice != nil && amount.GreaterThanOrEqual(*a.BuyoutPrice) {
		return s.commitBuyout(a, bidderID, amount, source, now)
	}

	updated := a
	updated.CurrentBid = amount
	updated.CurrentBidderID = &bidderID
	updated.BidCount++
	extended := auction.ApplyExtension(&updated, now, s.rules)

	committed, err := s.store.CompareAndSwapAuction(updated)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrStaleVersion) {
			// Lost the race against a concurrent submission; reload so the
			// rejected ledger row references live state.
			if fresh, gerr := s.store.GetAuction(auctionID); gerr == nil {
				a = fresh
			}
			return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrBidSuperseded)
		}
		return Result{}, fmt.Errorf("service: %w: %v", auctionerrors.ErrPersistenceUnavailable, err)
	}

	bid := s.appendLedger(committed, bidderID, amount, source, now, model.BidAccepted, "")

	s.bus.Publish(events.Event{
		Type:      events.BidAccepted,
		StreamID:  committed.StreamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		Bid:       &bid,
		At:        now,
	})
	if extended {
		s.bus.Publish(events.Event{
			Type:      events.AuctionExtended,
			StreamID:  committed.StreamID,
			AuctionID: committed.AuctionID,
			Auction:   &committed,
			At:        now,
		})
	}

	return Result{Bid: bid, Auction: committed, Extended: extended}, nil
}

// commitBuyout transitions active -> sold_via_buyout in one conditional update.
func (s *Service) commitBuyout(a model.Auction, bidderID string, amount decimal.Decimal, source model.BidSource, now time.Time) (Result, error) {
	updated := a
	updated.CurrentBid = amount
	updated.CurrentBidderID = &bidderID
	updated.BidCount++
	updated.Status = model.AuctionSoldViaBuyout

	committed, err := s.store.CompareAndSwapAuction(updated)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrStaleVersion) {
			if fresh, gerr := s.store.GetAuction(a.AuctionID); gerr == nil {
				a = fresh
			}
			return Result{}, s.reject(a, bidderID, amount, source, now, auctionerrors.ErrBidSuperseded)
		}
		return Result{}, fmt.Errorf("service: %w: %v", auctionerrors.ErrPersistenceUnavailable, err)
	}

	bid := s.appendLedger(committed, bidderID, amount, source, now, model.BidAccepted, "")
	s.deactivateAll(committed.AuctionID, auctionerrors.CauseAuctionEnded)

	s.bus.Publish(events.Event{
		Type:      events.BidAccepted,
		StreamID:  committed.StreamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		Bid:       &bid,
		At:        now,
	})
	s.bus.Publish(events.Event{
		Type:      events.AuctionSold,
		StreamID:  committed.StreamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		At:        now,
	})

	return Result{Bid: bid, Auction: committed, Buyout: true}, nil
}

// reject records the failed attempt in the ledger and returns the typed error.
func (s *Service) reject(a model.Auction, bidderID string, amount decimal.Decimal, source model.BidSource, now time.Time, cause error) error {
	s.appendLedger(a, bidderID, amount, source, now, model.BidRejected, rejectionReason(cause))
	return fmt.Errorf("service: bid on auction %s by %s rejected: %w", a.AuctionID, bidderID, cause)
}

// appendLedger writes one immutable attempt row. A ledger failure after the
// auction row already committed is logged, not surfaced; the auction state is
// authoritative.
func (s *Service) appendLedger(a model.Auction, bidderID string, amount decimal.Decimal, source model.BidSource, now time.Time, outcome model.BidOutcome, reason string) model.Bid {
	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: a.AuctionID,
		BidderID:  bidderID,
		Amount:    amount,
		Outcome:   outcome,
		Reason:    reason,
		Source:    source,
		CreatedAt: now,
	}
	if err := s.store.AppendBid(bid); err != nil {
		utils.Error("failed to append bid to ledger", map[string]any{
			"auction_id": a.AuctionID,
			"bidder_id":  bidderID,
			"outcome":    string(outcome),
			"error":      err.Error(),
		})
	}
	return bid
}

// expire lazily ends an auction whose clock ran out before any lifecycle
// operation noticed. A stale version here means someone else already moved
// the auction on, which is fine.
func (s *Service) expire(a model.Auction) {
	ended := a
	if err := auction.End(&ended); err != nil {
		return
	}
	committed, err := s.store.CompareAndSwapAuction(ended)
	if err != nil {
		return
	}
	s.deactivateAll(committed.AuctionID, auctionerrors.CauseAuctionEnded)
	s.bus.Publish(events.Event{
		Type:      events.AuctionEnded,
		StreamID:  committed.StreamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		At:        s.now(),
	})
}

// deactivateAll retires every active rule for an auction
func (s *Service) deactivateAll(auctionID, cause string) {
	rules, err := s.store.AutoBidsForAuction(auctionID)
	if err != nil {
		return
	}
	for _, rule := range rules {
		if rule.Active {
			if err := s.store.DeactivateAutoBid(auctionID, rule.RuleID, cause); err != nil {
				utils.Warn("failed to deactivate auto-bid rule", map[string]any{"rule_id": rule.RuleID, "error": err.Error()})
			}
		}
	}
}

// rejectionReason converts a typed rejection into the ledger's reason string
func rejectionReason(cause error) string {
	switch {
	case errors.Is(cause, auctionerrors.ErrAuctionNotActive):
		return "auction_not_active"
	case errors.Is(cause, auctionerrors.ErrBidTooLow):
		return "bid_too_low"
	case errors.Is(cause, auctionerrors.ErrAlreadyHighBidder):
		return "already_high_bidder"
	case errors.Is(cause, auctionerrors.ErrBidSuperseded):
		return "bid_superseded"
	default:
		return "rejected"
	}
}

// GetAuction returns the current auction snapshot
func (s *Service) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// GetBidsForAuction returns the full ledger for an auction
func (s *Service) GetBidsForAuction(auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := s.store.BidsForAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}
