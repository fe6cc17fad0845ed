// Package auction holds the pure lifecycle rules for a single auction:
// state transitions, expiry, and the anti-snipe extension policy. The rules
// operate on snapshots; committing the result is the caller's job.
package auction

import (
	"fmt"
	"time"

	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// Rules are the timing knobs applied to every auction.
type Rules struct {
	AntiSnipeWindow time.Duration
	ExtensionStep   time.Duration
	MaxExtensions   int
}

// New builds an active auction from a queue item's configuration. The current
// bid starts at the starting bid with no bidder attached.
func New(streamID, sellerID string, item model.QueueItem, now time.Time) model.Auction {
	cfg := item.Config
	mode := cfg.Mode
	if mode == "" {
		mode = model.ModeStandard
	}
	return model.Auction{
		AuctionID:    utils.GenerateID(),
		ProductID:    item.ProductID,
		SellerID:     sellerID,
		StreamID:     streamID,
		Status:       model.AuctionActive,
		Mode:         mode,
		StartingBid:  cfg.StartingBid,
		ReservePrice: cfg.ReservePrice,
		BuyoutPrice:  cfg.BuyoutPrice,
		MinIncrement: cfg.MinIncrement,
		CurrentBid:   cfg.StartingBid,
		StartedAt:    now,
		EndsAt:       now.Add(cfg.Duration),
	}
}

// Expired reports whether an active auction's clock has run out
func Expired(a model.Auction, now time.Time) bool {
	return a.Status == model.AuctionActive && !now.Before(a.EndsAt)
}

// ApplyExtension pushes the end time out when a qualifying bid lands inside
// the anti-snipe window. Sudden-death auctions never extend, and the number
// of extensions is capped. Returns true when the end time moved.
func ApplyExtension(a *model.Auction, now time.Time, r Rules) bool {
	if a.Mode == model.ModeSuddenDeath {
		return false
	}
	if a.ExtensionCount >= r.MaxExtensions {
		return false
	}
	if a.EndsAt.Sub(now) > r.AntiSnipeWindow {
		return false
	}
	a.EndsAt = a.EndsAt.Add(r.ExtensionStep)
	a.ExtensionCount++
	return true
}

// End moves an active auction to ended. The end timestamp never moves
// backward, so an early end keeps EndsAt as the seller-visible cutoff.
func End(a *model.Auction) error {
	if a.Status != model.AuctionActive {
		return fmt.Errorf("end auction %s in status %s: %w", a.AuctionID, a.Status, auctionerrors.ErrAuctionNotActive)
	}
	a.Status = model.AuctionEnded
	return nil
}

// MeetsReserve reports whether the current high bid satisfies the reserve
// price. Auctions without a reserve always qualify.
func MeetsReserve(a model.Auction) bool {
	if a.ReservePrice == nil {
		return true
	}
	return a.CurrentBid.GreaterThanOrEqual(*a.ReservePrice)
}

// HasWinner reports whether any bidder currently holds the high bid
func HasWinner(a model.Auction) bool {
	return a.CurrentBidderID != nil
}
