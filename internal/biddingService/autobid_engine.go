package bidding

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	"github.com/AimalShah/BarterDash-sub004/internal/events"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// SetAutoBid creates or raises a bidder's standing proxy rule for an auction.
// On an active auction the cascade runs immediately, so a fresh rule can take
// the lead without waiting for the next human bid.
func (s *Service) SetAutoBid(auctionID, bidderID string, ceiling decimal.Decimal) (model.AutoBid, error) {
	if auctionID == "" || bidderID == "" {
		return model.AutoBid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if !ceiling.IsPositive() {
		return model.AutoBid{}, fmt.Errorf("service: %w - non-positive ceiling", auctionerrors.ErrInvalidBid)
	}

	a, err := s.store.GetAuction(auctionID)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if a.Status.Terminal() || a.Status == model.AuctionEnded {
		return model.AutoBid{}, fmt.Errorf("service: auto-bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionNotActive)
	}

	rule := model.AutoBid{
		RuleID:    utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Ceiling:   ceiling,
		Active:    true,
		CreatedAt: s.now(),
	}

	// One rule per bidder per auction: raising the ceiling keeps the original
	// rule identity and creation time, preserving the first-mover tie-break.
	existing, err := s.store.AutoBidsForAuction(auctionID)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("service: failed to load auto-bids for auction %s: %w", auctionID, err)
	}
	for _, r := range existing {
		if r.BidderID == bidderID {
			rule.RuleID = r.RuleID
			rule.CreatedAt = r.CreatedAt
			break
		}
	}

	saved, err := s.store.SaveAutoBid(rule)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("service: failed to save auto-bid: %w", err)
	}

	if a.Status == model.AuctionActive {
		s.runCascade(auctionID)
	}

	// Report the rule as it stands after the cascade (it may already have
	// been deactivated by a competing ceiling).
	if rules, rerr := s.store.AutoBidsForAuction(auctionID); rerr == nil {
		for _, r := range rules {
			if r.RuleID == saved.RuleID {
				return r, nil
			}
		}
	}
	return saved, nil
}

// GetAutoBidsForAuction returns every proxy rule for an auction
func (s *Service) GetAutoBidsForAuction(auctionID string) ([]model.AutoBid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	rules, err := s.store.AutoBidsForAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auto-bids for auction %s: %w", auctionID, err)
	}
	return rules, nil
}

// runCascade evaluates proxy rules after an accepted bid and synthesizes
// counter-bids through the normal acceptance path. Each accepted round
// strictly raises the high bid by at least one increment and ceilings are
// finite, so the loop terminates once every rule is exhausted or leading.
func (s *Service) runCascade(auctionID string) {
	for {
		a, err := s.store.GetAuction(auctionID)
		if err != nil || a.Status != model.AuctionActive {
			return
		}

		rules, err := s.store.AutoBidsForAuction(auctionID)
		if err != nil {
			return
		}
		s.retireExceeded(a, rules)

		next := a.CurrentBid.Add(a.MinIncrement)
		best, ok := selectRule(rules, a, next)
		if !ok {
			return
		}

		// Equal ceilings: the earliest rule wins, the rest can never beat it.
		for _, r := range rules {
			if r.Active && r.RuleID != best.RuleID && r.Ceiling.Equal(best.Ceiling) && eligible(r, a, next) {
				s.deactivateRule(a, r, auctionerrors.CauseOutbidByEqualCeiling)
			}
		}

		res, err := s.submit(auctionID, best.BidderID, next, model.SourceAutoBid)
		if err != nil {
			// A race changed state mid-cascade. Stop rather than retry; the
			// next accepted bid re-triggers evaluation.
			utils.Warn("auto-bid cascade stopped", map[string]any{
				"auction_id": auctionID,
				"rule_id":    best.RuleID,
				"error":      err.Error(),
			})
			return
		}
		if res.Buyout {
			return
		}
	}
}

// retireExceeded deactivates every active rule whose ceiling fell below the
// current high bid.
func (s *Service) retireExceeded(a model.Auction, rules []model.AutoBid) {
	for _, r := range rules {
		if r.Active && r.Ceiling.LessThan(a.CurrentBid) {
			s.deactivateRule(a, r, auctionerrors.CauseCeilingExceeded)
		}
	}
}

func (s *Service) deactivateRule(a model.Auction, r model.AutoBid, cause string) {
	if err := s.store.DeactivateAutoBid(a.AuctionID, r.RuleID, cause); err != nil {
		utils.Warn("failed to deactivate auto-bid rule", map[string]any{"rule_id": r.RuleID, "error": err.Error()})
		return
	}
	s.bus.Publish(events.Event{
		Type:      events.AutoBidOutbid,
		StreamID:  a.StreamID,
		AuctionID: a.AuctionID,
		Auction:   &a,
		At:        s.now(),
	})
}

// eligible reports whether a rule can counter the current high bid
func eligible(r model.AutoBid, a model.Auction, next decimal.Decimal) bool {
	if !r.Active {
		return false
	}
	if a.CurrentBidderID != nil && *a.CurrentBidderID == r.BidderID {
		return false
	}
	return r.Ceiling.GreaterThanOrEqual(next)
}

// selectRule picks the eligible rule with the highest ceiling; ties go to the
// rule created first.
func selectRule(rules []model.AutoBid, a model.Auction, next decimal.Decimal) (model.AutoBid, bool) {
	var best model.AutoBid
	found := false
	for _, r := range rules {
		if !eligible(r, a, next) {
			continue
		}
		if !found || r.Ceiling.GreaterThan(best.Ceiling) || (r.Ceiling.Equal(best.Ceiling) && beats(r, best)) {
			best = r
			found = true
		}
	}
	return best, found
}

// beats is the deterministic first-mover tie-break for equal ceilings
func beats(r, best model.AutoBid) bool {
	if r.CreatedAt.Equal(best.CreatedAt) {
		return r.RuleID < best.RuleID
	}
	return r.CreatedAt.Before(best.CreatedAt)
}
