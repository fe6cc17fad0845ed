// Package events carries auction lifecycle notifications from the core
// services to observers: the stream coordinator, the websocket feed, and the
// optional Redis publisher.
package events

import (
	"time"

	model "github.com/AimalShah/BarterDash-sub004/internal/models"
)

// Type identifies what happened
type Type string

const (
	AuctionStarted  Type = "auction_started"
	BidAccepted     Type = "bid_accepted"
	AuctionExtended Type = "auction_extended"
	AuctionEnded    Type = "auction_ended"
	AuctionSold     Type = "auction_sold"
	AuctionPassed   Type = "auction_passed"
	QueueUpdated    Type = "queue_updated"
	AutoBidOutbid   Type = "autobid_outbid"
)

// Event is one notification. The auction snapshot carries everything the UI
// needs to render the live state (current bid, bidder, count, end time, mode).
type Event struct {
	Type      Type             `json:"type"`
	StreamID  string           `json:"stream_id,omitempty"`
	AuctionID string           `json:"auction_id,omitempty"`
	Auction   *model.Auction   `json:"auction,omitempty"`
	Bid       *model.Bid       `json:"bid,omitempty"`
	Item      *model.QueueItem `json:"item,omitempty"`
	At        time.Time        `json:"at"`
}

// Handler consumes events. Handlers run synchronously on the publishing
// goroutine and must not block.
type Handler func(Event)

// Bus is a minimal in-process fan-out. Subscribe before publishing begins;
// subscription is not synchronized against concurrent publishes.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every subsequent event
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every handler in subscription order
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}
