package auctionerrors

import "errors"

// Store-level errors
var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrStreamNotFound    = errors.New("stream not found")
	ErrQueueItemNotFound = errors.New("queue item not found")
	ErrAutoBidNotFound   = errors.New("auto-bid rule not found")
	ErrStaleVersion      = errors.New("auction version is stale")

	// ErrPersistenceUnavailable marks store failures; callers must treat the
	// attempted write as not committed.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// Business logic errors
var (
	ErrInvalidBid           = errors.New("invalid bid")
	ErrAuctionNotActive     = errors.New("auction is not active")
	ErrBidTooLow            = errors.New("bid amount too low")
	ErrAlreadyHighBidder    = errors.New("bidder already holds the high bid")
	ErrBidSuperseded        = errors.New("bid superseded by a concurrent bid")
	ErrAuctionAlreadyActive = errors.New("stream already has an active auction")
	ErrReserveNotMet        = errors.New("reserve price not met")
	ErrNoWinningBid         = errors.New("no winning bid exists")
	ErrNotSeller            = errors.New("caller does not own this stream")
	ErrInvalidQueueOp       = errors.New("invalid queue operation")
)

// Auto-bid deactivation causes, stored on the rule for audit
const (
	CauseCeilingExceeded      = "ceiling_exceeded"
	CauseOutbidByEqualCeiling = "outbid_by_equal_ceiling"
	CauseAuctionEnded         = "auction_ended"
)
