package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionStore.
// It stands in for the relational persistence collaborator; version checks on
// auctions mirror a conditional UPDATE with a row-version predicate.
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction     // key: auctionID
	bids     map[string][]model.Bid       // key: auctionID -> ledger rows in append order
	autoBids map[string][]model.AutoBid   // key: auctionID -> proxy rules
	streams  map[string]model.Stream      // key: streamID
	queues   map[string][]model.QueueItem // key: streamID -> items, order maintained by OrderIndex
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
		autoBids: make(map[string][]model.AutoBid),
		streams:  make(map[string]model.Stream),
		queues:   make(map[string][]model.QueueItem),
	}
}

// CreateAuction stores a new auction row at version 1
func (r *MemoryRepo) CreateAuction(a model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; ok {
		return model.Auction{}, fmt.Errorf("create auction %s: already exists", a.AuctionID)
	}
	a.Version = 1
	r.auctions[a.AuctionID] = a
	return a, nil
}

// GetAuction returns the auction row with its current version
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// CompareAndSwapAuction commits a only if the stored version still matches
// a.Version. This is the per-auction serialization point; unrelated auctions
// never contend beyond the map lock.
func (r *MemoryRepo) CompareAndSwapAuction(a model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[a.AuctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("cas auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if stored.Version != a.Version {
		return model.Auction{}, fmt.Errorf("cas auction %s at version %d (stored %d): %w",
			a.AuctionID, a.Version, stored.Version, auctionerrors.ErrStaleVersion)
	}
	a.Version++
	r.auctions[a.AuctionID] = a
	return a, nil
}

// ActiveAuctionForStream returns the stream's active auction, if any
func (r *MemoryRepo) ActiveAuctionForStream(streamID string) (model.Auction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.auctions {
		if a.StreamID == streamID && a.Status == model.AuctionActive {
			return a, true, nil
		}
	}
	return model.Auction{}, false, nil
}

// AppendBid appends one attempt to the ledger. The ledger is append-only;
// rows are never updated or removed.
func (r *MemoryRepo) AppendBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("append bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	return nil
}

// BidsForAuction returns the full ledger for an auction in append order
func (r *MemoryRepo) BidsForAuction(auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), r.bids[auctionID]...), nil
}

// SaveAutoBid inserts a rule, or replaces it when the RuleID already exists
func (r *MemoryRepo) SaveAutoBid(rule model.AutoBid) (model.AutoBid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[rule.AuctionID]; !ok {
		return model.AutoBid{}, fmt.Errorf("save auto-bid for auction %s: %w", rule.AuctionID, auctionerrors.ErrAuctionNotFound)
	}

	rules := r.autoBids[rule.AuctionID]
	for i, existing := range rules {
		if existing.RuleID == rule.RuleID {
			rules[i] = rule
			return rule, nil
		}
	}
	r.autoBids[rule.AuctionID] = append(rules, rule)
	return rule, nil
}

// AutoBidsForAuction returns all rules for an auction, active or not
func (r *MemoryRepo) AutoBidsForAuction(auctionID string) ([]model.AutoBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get auto-bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.AutoBid(nil), r.autoBids[auctionID]...), nil
}

// DeactivateAutoBid marks a rule inactive with a cause. Rules are never deleted.
func (r *MemoryRepo) DeactivateAutoBid(auctionID, ruleID, cause string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rules := r.autoBids[auctionID]
	for i, rule := range rules {
		if rule.RuleID == ruleID {
			rules[i].Active = false
			rules[i].DeactivatedCause = cause
			return nil
		}
	}
	return fmt.Errorf("deactivate auto-bid %s for auction %s: %w", ruleID, auctionID, auctionerrors.ErrAutoBidNotFound)
}

// CreateStream stores a new stream
func (r *MemoryRepo) CreateStream(s model.Stream) (model.Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streams[s.StreamID]; ok {
		return model.Stream{}, fmt.Errorf("create stream %s: already exists", s.StreamID)
	}
	r.streams[s.StreamID] = s
	return s, nil
}

// GetStream returns a stream by id
func (r *MemoryRepo) GetStream(streamID string) (model.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.streams[streamID]
	if !ok {
		return model.Stream{}, fmt.Errorf("get stream %s: %w", streamID, auctionerrors.ErrStreamNotFound)
	}
	return s, nil
}

// UpdateStream replaces a stream row
func (r *MemoryRepo) UpdateStream(s model.Stream) (model.Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streams[s.StreamID]; !ok {
		return model.Stream{}, fmt.Errorf("update stream %s: %w", s.StreamID, auctionerrors.ErrStreamNotFound)
	}
	r.streams[s.StreamID] = s
	return s, nil
}

// AddQueueItem appends a product to a stream's queue
func (r *MemoryRepo) AddQueueItem(item model.QueueItem) (model.QueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streams[item.StreamID]; !ok {
		return model.QueueItem{}, fmt.Errorf("add queue item to stream %s: %w", item.StreamID, auctionerrors.ErrStreamNotFound)
	}
	for _, existing := range r.queues[item.StreamID] {
		if existing.ProductID == item.ProductID {
			return model.QueueItem{}, fmt.Errorf("add queue item: product %s already queued on stream %s: %w",
				item.ProductID, item.StreamID, auctionerrors.ErrInvalidQueueOp)
		}
	}
	r.queues[item.StreamID] = append(r.queues[item.StreamID], item)
	return item, nil
}

// GetQueueItem returns one queue entry by stream and product
func (r *MemoryRepo) GetQueueItem(streamID, productID string) (model.QueueItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.queues[streamID] {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return model.QueueItem{}, fmt.Errorf("get queue item %s on stream %s: %w", productID, streamID, auctionerrors.ErrQueueItemNotFound)
}

// UpdateQueueItem replaces a queue entry identified by stream and product
func (r *MemoryRepo) UpdateQueueItem(item model.QueueItem) (model.QueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.queues[item.StreamID]
	for i, existing := range items {
		if existing.ProductID == item.ProductID {
			items[i] = item
			return item, nil
		}
	}
	return model.QueueItem{}, fmt.Errorf("update queue item %s on stream %s: %w", item.ProductID, item.StreamID, auctionerrors.ErrQueueItemNotFound)
}

// QueueForStream returns the stream's queue sorted by order index
func (r *MemoryRepo) QueueForStream(streamID string) ([]model.QueueItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.streams[streamID]; !ok {
		return nil, fmt.Errorf("get queue for stream %s: %w", streamID, auctionerrors.ErrStreamNotFound)
	}
	items := append([]model.QueueItem(nil), r.queues[streamID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })
	return items, nil
}
