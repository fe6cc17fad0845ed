package helpers

import (
	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type SetAutoBidRequest struct {
	Ceiling decimal.Decimal `json:"ceiling" binding:"required"`
}

type CreateStreamRequest struct {
	Title string `json:"title" binding:"required"`
}

type AddQueueItemRequest struct {
	ProductID       string           `json:"product_id" binding:"required"`
	StartingBid     decimal.Decimal  `json:"starting_bid" binding:"required"`
	MinIncrement    decimal.Decimal  `json:"min_increment"`
	DurationSeconds int              `json:"duration_seconds"`
	Mode            string           `json:"mode"`
	ReservePrice    *decimal.Decimal `json:"reserve_price"`
	BuyoutPrice     *decimal.Decimal `json:"buyout_price"`
}

type ReorderQueueRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required"`
}

type ProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	Outcome   string          `json:"outcome"`
	Source    string          `json:"source"`
	CreatedAt string          `json:"created_at"`
}

// PlaceBidResponse reports the submitter's bid plus the auction after any
// auto-bid cascade settled.
type PlaceBidResponse struct {
	Bid      BidResponse     `json:"bid"`
	Auction  AuctionResponse `json:"auction"`
	Extended bool            `json:"extended"`
	Buyout   bool            `json:"buyout"`
}

type AuctionResponse struct {
	AuctionID       string          `json:"auction_id"`
	ProductID       string          `json:"product_id"`
	StreamID        string          `json:"stream_id,omitempty"`
	Status          string          `json:"status"`
	Mode            string          `json:"mode"`
	CurrentBid      decimal.Decimal `json:"current_bid"`
	CurrentBidderID string          `json:"current_bidder_id,omitempty"`
	BidCount        int             `json:"bid_count"`
	MinIncrement    decimal.Decimal `json:"min_increment"`
	EndsAt          string          `json:"ends_at"`
	ExtensionCount  int             `json:"extension_count"`
}
