package repository

import (
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionStore defines the persistence boundary for the auction system.
// Implementations must keep the bid ledger append-only and must make
// CompareAndSwapAuction atomic per auction.
type AuctionStore interface {
	// Auction rows
	CreateAuction(a model.Auction) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	// CompareAndSwapAuction writes a only if the stored version still equals
	// a.Version, bumping the version on success. A mismatch returns
	// auctionerrors.ErrStaleVersion and leaves the row untouched.
	CompareAndSwapAuction(a model.Auction) (model.Auction, error)
	ActiveAuctionForStream(streamID string) (model.Auction, bool, error)

	// Bid ledger, append-only
	AppendBid(bid model.Bid) error
	BidsForAuction(auctionID string) ([]model.Bid, error)

	// Auto-bid rules
	SaveAutoBid(rule model.AutoBid) (model.AutoBid, error)
	AutoBidsForAuction(auctionID string) ([]model.AutoBid, error)
	DeactivateAutoBid(auctionID, ruleID, cause string) error

	// Streams and their product queues
	CreateStream(s model.Stream) (model.Stream, error)
	GetStream(streamID string) (model.Stream, error)
	UpdateStream(s model.Stream) (model.Stream, error)
	AddQueueItem(item model.QueueItem) (model.QueueItem, error)
	GetQueueItem(streamID, productID string) (model.QueueItem, error)
	UpdateQueueItem(item model.QueueItem) (model.QueueItem, error)
	QueueForStream(streamID string) ([]model.QueueItem, error)
}
