package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a participant (bidder or seller) in the marketplace
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "bidder" or "seller"
}

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionScheduled     AuctionStatus = "scheduled"
	AuctionActive        AuctionStatus = "active"
	AuctionEnded         AuctionStatus = "ended"
	AuctionSold          AuctionStatus = "sold"
	AuctionSoldViaBuyout AuctionStatus = "sold_via_buyout"
	AuctionPassed        AuctionStatus = "passed"
)

// Terminal reports whether the auction can no longer change state
func (s AuctionStatus) Terminal() bool {
	return s == AuctionSold || s == AuctionSoldViaBuyout || s == AuctionPassed
}

// AuctionMode controls the anti-snipe extension behavior
type AuctionMode string

const (
	ModeStandard    AuctionMode = "standard"
	ModeSuddenDeath AuctionMode = "sudden_death"
)

// Auction is one product being sold live on a stream
type Auction struct {
	AuctionID       string           `json:"auction_id"`
	ProductID       string           `json:"product_id"`
	SellerID        string           `json:"seller_id"`
	StreamID        string           `json:"stream_id,omitempty"`
	Status          AuctionStatus    `json:"status"`
	Mode            AuctionMode      `json:"mode"`
	StartingBid     decimal.Decimal  `json:"starting_bid"`
	ReservePrice    *decimal.Decimal `json:"reserve_price,omitempty"`
	BuyoutPrice     *decimal.Decimal `json:"buyout_price,omitempty"`
	MinIncrement    decimal.Decimal  `json:"min_increment"`
	CurrentBid      decimal.Decimal  `json:"current_bid"`
	CurrentBidderID *string          `json:"current_bidder_id,omitempty"`
	BidCount        int              `json:"bid_count"`
	StartedAt       time.Time        `json:"started_at"`
	EndsAt          time.Time        `json:"ends_at"`
	ExtensionCount  int              `json:"extension_count"`
	Version         int64            `json:"version"`
}

// BidOutcome records whether a bid attempt changed auction state
type BidOutcome string

const (
	BidAccepted BidOutcome = "accepted"
	BidRejected BidOutcome = "rejected"
)

// BidSource distinguishes human bids from auto-bid synthesized ones
type BidSource string

const (
	SourceUser    BidSource = "user"
	SourceAutoBid BidSource = "auto_bid"
)

// Bid is one attempt in the append-only ledger. Rows are immutable.
type Bid struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	Outcome   BidOutcome      `json:"outcome"`
	Reason    string          `json:"reason,omitempty"`
	Source    BidSource       `json:"source"`
	CreatedAt time.Time       `json:"created_at"`
}

// AutoBid is a standing proxy rule bidding on a user's behalf up to a ceiling
type AutoBid struct {
	RuleID           string          `json:"rule_id"`
	AuctionID        string          `json:"auction_id"`
	BidderID         string          `json:"bidder_id"`
	Ceiling          decimal.Decimal `json:"ceiling"`
	Active           bool            `json:"active"`
	DeactivatedCause string          `json:"deactivated_cause,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Stream is a seller's live show with an ordered product queue
type Stream struct {
	StreamID        string  `json:"stream_id"`
	SellerID        string  `json:"seller_id"`
	Title           string  `json:"title"`
	PinnedProductID *string `json:"pinned_product_id,omitempty"`
}

// QueueStatus tracks where a queued product is in the show
type QueueStatus string

const (
	QueueUpcoming QueueStatus = "upcoming"
	QueueActive   QueueStatus = "active"
	QueueSold     QueueStatus = "sold"
	QueuePassed   QueueStatus = "passed"
)

// AuctionConfig is the per-item auction setup chosen by the seller
type AuctionConfig struct {
	StartingBid  decimal.Decimal  `json:"starting_bid"`
	MinIncrement decimal.Decimal  `json:"min_increment"`
	Duration     time.Duration    `json:"duration"`
	Mode         AuctionMode      `json:"mode"`
	ReservePrice *decimal.Decimal `json:"reserve_price,omitempty"`
	BuyoutPrice  *decimal.Decimal `json:"buyout_price,omitempty"`
}

// QueueItem is one product waiting its turn on a stream
type QueueItem struct {
	StreamID   string        `json:"stream_id"`
	ProductID  string        `json:"product_id"`
	OrderIndex int           `json:"order_index"`
	Status     QueueStatus   `json:"status"`
	Config     AuctionConfig `json:"config"`
	AuctionID  string        `json:"auction_id,omitempty"`
}
