package stream

import (
	"errors"
	"fmt"
	"time"

	"github.com/AimalShah/BarterDash-sub004/internal/auction"
	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	"github.com/AimalShah/BarterDash-sub004/internal/config"
	"github.com/AimalShah/BarterDash-sub004/internal/events"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/internal/repository"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// Service is the stream/queue coordinator: it owns which product is pinned
// or on the block for a live stream, and settles auctions into sold/passed.
// Every mutating operation re-checks that the caller owns the stream.
type Service struct {
	store    repository.AuctionStore
	bus      *events.Bus
	defaults config.AuctionDefaults

	now func() time.Time
}

// NewService creates a stream coordinator instance
func NewService(store repository.AuctionStore, bus *events.Bus, defaults config.AuctionDefaults) *Service {
	return &Service{
		store:    store,
		bus:      bus,
		defaults: defaults,
		now:      time.Now,
	}
}

// CreateStream opens a new live stream owned by the seller
func (s *Service) CreateStream(sellerID, title string) (model.Stream, error) {
	if sellerID == "" || title == "" {
		return model.Stream{}, fmt.Errorf("service: %w - missing sellerID or title", auctionerrors.ErrInvalidQueueOp)
	}
	created, err := s.store.CreateStream(model.Stream{
		StreamID: utils.GenerateID(),
		SellerID: sellerID,
		Title:    title,
	})
	if err != nil {
		return model.Stream{}, fmt.Errorf("service: failed to create stream: %w", err)
	}
	return created, nil
}

// AddQueueItem appends a product to the end of the seller's queue, filling
// unset auction settings from the configured defaults.
func (s *Service) AddQueueItem(sellerID, streamID, productID string, cfg model.AuctionConfig) (model.QueueItem, error) {
	if _, err := s.ownedStream(sellerID, streamID); err != nil {
		return model.QueueItem{}, err
	}
	if productID == "" {
		return model.QueueItem{}, fmt.Errorf("service: %w - missing productID", auctionerrors.ErrInvalidQueueOp)
	}
	if !cfg.StartingBid.IsPositive() {
		return model.QueueItem{}, fmt.Errorf("service: %w - starting bid must be positive", auctionerrors.ErrInvalidQueueOp)
	}
	if cfg.MinIncrement.IsZero() {
		cfg.MinIncrement = s.defaults.MinIncrement
	}
	if cfg.Duration == 0 {
		cfg.Duration = s.defaults.Duration
	}
	if cfg.Mode == "" {
		cfg.Mode = model.ModeStandard
	}

	queue, err := s.store.QueueForStream(streamID)
	if err != nil {
		return model.QueueItem{}, fmt.Errorf("service: failed to load queue for stream %s: %w", streamID, err)
	}

	item, err := s.store.AddQueueItem(model.QueueItem{
		StreamID:   streamID,
		ProductID:  productID,
		OrderIndex: len(queue),
		Status:     model.QueueUpcoming,
		Config:     cfg,
	})
	if err != nil {
		return model.QueueItem{}, fmt.Errorf("service: failed to add queue item: %w", err)
	}

	s.publishQueueUpdated(streamID, &item)
	return item, nil
}

// ReorderQueue rewrites the order of the stream's queue. The id list must be
// a permutation of the currently queued products.
func (s *Service) ReorderQueue(sellerID, streamID string, productIDs []string) ([]model.QueueItem, error) {
	if _, err := s.ownedStream(sellerID, streamID); err != nil {
		return nil, err
	}

	queue, err := s.store.QueueForStream(streamID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load queue for stream %s: %w", streamID, err)
	}
	if len(productIDs) != len(queue) {
		return nil, fmt.Errorf("service: %w - reorder must list all %d queued products", auctionerrors.ErrInvalidQueueOp, len(queue))
	}

	byProduct := make(map[string]model.QueueItem, len(queue))
	for _, item := range queue {
		byProduct[item.ProductID] = item
	}

	reordered := make([]model.QueueItem, 0, len(productIDs))
	for idx, productID := range productIDs {
		item, ok := byProduct[productID]
		if !ok {
			return nil, fmt.Errorf("service: %w - product %s is not queued", auctionerrors.ErrInvalidQueueOp, productID)
		}
		delete(byProduct, productID)
		item.OrderIndex = idx
		updated, err := s.store.UpdateQueueItem(item)
		if err != nil {
			return nil, fmt.Errorf("service: failed to reorder queue item %s: %w", productID, err)
		}
		reordered = append(reordered, updated)
	}

	s.publishQueueUpdated(streamID, nil)
	return reordered, nil
}

// Pin highlights a queued product on the stream
func (s *Service) Pin(sellerID, streamID, productID string) (model.Stream, error) {
	st, err := s.ownedStream(sellerID, streamID)
	if err != nil {
		return model.Stream{}, err
	}

	item, err := s.store.GetQueueItem(streamID, productID)
	if err != nil {
		return model.Stream{}, fmt.Errorf("service: failed to pin product %s: %w", productID, err)
	}
	if item.Status == model.QueueSold || item.Status == model.QueuePassed {
		return model.Stream{}, fmt.Errorf("service: %w - product %s already settled", auctionerrors.ErrInvalidQueueOp, productID)
	}

	st.PinnedProductID = &item.ProductID
	updated, err := s.store.UpdateStream(st)
	if err != nil {
		return model.Stream{}, fmt.Errorf("service: failed to update stream %s: %w", streamID, err)
	}

	s.publishQueueUpdated(streamID, &item)
	return updated, nil
}

// StartAuction puts a queued product on the block. A stream runs at most one
// active auction at a time.
func (s *Service) StartAuction(sellerID, streamID, productID string) (model.Auction, error) {
	st, err := s.ownedStream(sellerID, streamID)
	if err != nil {
		return model.Auction{}, err
	}

	if _, active, err := s.store.ActiveAuctionForStream(streamID); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to check active auction for stream %s: %w", streamID, err)
	} else if active {
		return model.Auction{}, fmt.Errorf("service: start auction on stream %s: %w", streamID, auctionerrors.ErrAuctionAlreadyActive)
	}

	item, err := s.store.GetQueueItem(streamID, productID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to load queue item %s: %w", productID, err)
	}
	if item.Status != model.QueueUpcoming {
		return model.Auction{}, fmt.Errorf("service: %w - product %s is %s", auctionerrors.ErrInvalidQueueOp, productID, item.Status)
	}

	now := s.now()
	created, err := s.store.CreateAuction(auction.New(streamID, sellerID, item, now))
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	item.Status = model.QueueActive
	item.AuctionID = created.AuctionID
	if item, err = s.store.UpdateQueueItem(item); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to mark queue item active: %w", err)
	}

	st.PinnedProductID = &item.ProductID
	if _, err := s.store.UpdateStream(st); err != nil {
		utils.Warn("failed to pin product on auction start", map[string]any{"stream_id": streamID, "error": err.Error()})
	}

	s.bus.Publish(events.Event{
		Type:      events.AuctionStarted,
		StreamID:  streamID,
		AuctionID: created.AuctionID,
		Auction:   &created,
		Item:      &item,
		At:        now,
	})
	return created, nil
}

// EndAuction ends the stream's active auction early. Settlement into
// sold/passed remains a separate seller decision.
func (s *Service) EndAuction(sellerID, streamID string) (model.Auction, error) {
	if _, err := s.ownedStream(sellerID, streamID); err != nil {
		return model.Auction{}, err
	}

	a, active, err := s.store.ActiveAuctionForStream(streamID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to load active auction for stream %s: %w", streamID, err)
	}
	if !active {
		return model.Auction{}, fmt.Errorf("service: end auction on stream %s: %w", streamID, auctionerrors.ErrAuctionNotActive)
	}

	committed, err := s.endAuction(a)
	if err != nil {
		return model.Auction{}, err
	}
	return committed, nil
}

// MarkSold settles the stream's current auction as sold to the high bidder.
// An active auction is ended first (the seller calling the hammer early).
func (s *Service) MarkSold(sellerID, streamID string) (model.Auction, error) {
	if _, err := s.ownedStream(sellerID, streamID); err != nil {
		return model.Auction{}, err
	}

	item, a, err := s.currentLot(streamID)
	if err != nil {
		return model.Auction{}, err
	}

	if a.Status == model.AuctionActive {
		if a, err = s.endAuction(a); err != nil {
			return model.Auction{}, err
		}
	}
	if a.Status != model.AuctionEnded {
		return model.Auction{}, fmt.Errorf("service: %w - auction %s is %s", auctionerrors.ErrInvalidQueueOp, a.AuctionID, a.Status)
	}
	if !auction.HasWinner(a) {
		return model.Auction{}, fmt.Errorf("service: mark sold on auction %s: %w", a.AuctionID, auctionerrors.ErrNoWinningBid)
	}
	if !auction.MeetsReserve(a) {
		return model.Auction{}, fmt.Errorf("service: mark sold on auction %s: %w", a.AuctionID, auctionerrors.ErrReserveNotMet)
	}

	a.Status = model.AuctionSold
	committed, err := s.store.CompareAndSwapAuction(a)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to mark auction %s sold: %w", a.AuctionID, err)
	}

	s.settleQueueItem(item, model.QueueSold)
	s.bus.Publish(events.Event{
		Type:      events.AuctionSold,
		StreamID:  streamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		At:        s.now(),
	})
	return committed, nil
}

// MarkPassed settles the stream's current auction as passed (no sale)
func (s *Service) MarkPassed(sellerID, streamID string) (model.Auction, error) {
	if _, err := s.ownedStream(sellerID, streamID); err != nil {
		return model.Auction{}, err
	}

	item, a, err := s.currentLot(streamID)
	if err != nil {
		return model.Auction{}, err
	}

	if a.Status == model.AuctionActive {
		if a, err = s.endAuction(a); err != nil {
			return model.Auction{}, err
		}
	}
	if a.Status != model.AuctionEnded {
		return model.Auction{}, fmt.Errorf("service: %w - auction %s is %s", auctionerrors.ErrInvalidQueueOp, a.AuctionID, a.Status)
	}

	a.Status = model.AuctionPassed
	committed, err := s.store.CompareAndSwapAuction(a)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to mark auction %s passed: %w", a.AuctionID, err)
	}

	s.settleQueueItem(item, model.QueuePassed)
	s.bus.Publish(events.Event{
		Type:      events.AuctionPassed,
		StreamID:  streamID,
		AuctionID: committed.AuctionID,
		Auction:   &committed,
		At:        s.now(),
	})
	return committed, nil
}

// Advance pins the next upcoming product. It never starts the auction; the
// seller keeps explicit control over when bidding opens.
func (s *Service) Advance(sellerID, streamID string) (model.QueueItem, error) {
	st, err := s.ownedStream(sellerID, streamID)
	if err != nil {
		return model.QueueItem{}, err
	}

	queue, err := s.store.QueueForStream(streamID)
	if err != nil {
		return model.QueueItem{}, fmt.Errorf("service: failed to load queue for stream %s: %w", streamID, err)
	}
	for _, item := range queue {
		if item.Status == model.QueueUpcoming {
			st.PinnedProductID = &item.ProductID
			if _, err := s.store.UpdateStream(st); err != nil {
				return model.QueueItem{}, fmt.Errorf("service: failed to pin next product: %w", err)
			}
			s.publishQueueUpdated(streamID, &item)
			return item, nil
		}
	}
	return model.QueueItem{}, fmt.Errorf("service: advance on stream %s: %w", streamID, auctionerrors.ErrQueueItemNotFound)
}

// Queue returns the stream's queue in display order
func (s *Service) Queue(streamID string) ([]model.QueueItem, error) {
	queue, err := s.store.QueueForStream(streamID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load queue for stream %s: %w", streamID, err)
	}
	return queue, nil
}

// GetStream returns a stream by id
func (s *Service) GetStream(streamID string) (model.Stream, error) {
	st, err := s.store.GetStream(streamID)
	if err != nil {
		return model.Stream{}, fmt.Errorf("service: failed to get stream %s: %w", streamID, err)
	}
	return st, nil
}

// HandleAuctionEvent keeps the queue in step with terminal auction states
// that originate inside the bid acceptor, i.e. buyouts.
func (s *Service) HandleAuctionEvent(e events.Event) {
	if e.Type != events.AuctionSold || e.Auction == nil || e.Auction.Status != model.AuctionSoldViaBuyout {
		return
	}
	item, err := s.store.GetQueueItem(e.Auction.StreamID, e.Auction.ProductID)
	if err != nil || item.Status != model.QueueActive {
		return
	}
	s.settleQueueItem(item, model.QueueSold)
}

// endAuction commits active -> ended, retrying once when a concurrent bid
// bumped the version; the seller's intent to end stands either way.
func (s *Service) endAuction(a model.Auction) (model.Auction, error) {
	for attempt := 0; attempt < 2; attempt++ {
		ended := a
		if err := auction.End(&ended); err != nil {
			return model.Auction{}, err
		}
		committed, err := s.store.CompareAndSwapAuction(ended)
		if err == nil {
			s.bus.Publish(events.Event{
				Type:      events.AuctionEnded,
				StreamID:  committed.StreamID,
				AuctionID: committed.AuctionID,
				Auction:   &committed,
				At:        s.now(),
			})
			return committed, nil
		}
		if !errors.Is(err, auctionerrors.ErrStaleVersion) {
			return model.Auction{}, fmt.Errorf("service: failed to end auction %s: %w", a.AuctionID, err)
		}
		if a, err = s.store.GetAuction(a.AuctionID); err != nil {
			return model.Auction{}, fmt.Errorf("service: failed to reload auction: %w", err)
		}
	}
	return model.Auction{}, fmt.Errorf("service: end auction %s: %w", a.AuctionID, auctionerrors.ErrStaleVersion)
}

// currentLot finds the queue item currently on the block and its auction
func (s *Service) currentLot(streamID string) (model.QueueItem, model.Auction, error) {
	queue, err := s.store.QueueForStream(streamID)
	if err != nil {
		return model.QueueItem{}, model.Auction{}, fmt.Errorf("service: failed to load queue for stream %s: %w", streamID, err)
	}
	for _, item := range queue {
		if item.Status == model.QueueActive && item.AuctionID != "" {
			a, err := s.store.GetAuction(item.AuctionID)
			if err != nil {
				return model.QueueItem{}, model.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", item.AuctionID, err)
			}
			return item, a, nil
		}
	}
	return model.QueueItem{}, model.Auction{}, fmt.Errorf("service: no lot on the block for stream %s: %w", streamID, auctionerrors.ErrQueueItemNotFound)
}

// settleQueueItem moves the item to a terminal status and clears the pin if
// this product held it.
func (s *Service) settleQueueItem(item model.QueueItem, status model.QueueStatus) {
	item.Status = status
	updated, err := s.store.UpdateQueueItem(item)
	if err != nil {
		utils.Error("failed to settle queue item", map[string]any{
			"stream_id":  item.StreamID,
			"product_id": item.ProductID,
			"error":      err.Error(),
		})
		return
	}

	st, err := s.store.GetStream(item.StreamID)
	if err == nil && st.PinnedProductID != nil && *st.PinnedProductID == item.ProductID {
		st.PinnedProductID = nil
		if _, err := s.store.UpdateStream(st); err != nil {
			utils.Warn("failed to clear pin", map[string]any{"stream_id": item.StreamID, "error": err.Error()})
		}
	}

	s.publishQueueUpdated(item.StreamID, &updated)
}

// ownedStream loads the stream and enforces seller ownership
func (s *Service) ownedStream(sellerID, streamID string) (model.Stream, error) {
	st, err := s.store.GetStream(streamID)
	if err != nil {
		return model.Stream{}, fmt.Errorf("service: failed to get stream %s: %w", streamID, err)
	}
	if st.SellerID != sellerID {
		return model.Stream{}, fmt.Errorf("service: stream %s owned by %s: %w", streamID, st.SellerID, auctionerrors.ErrNotSeller)
	}
	return st, nil
}

func (s *Service) publishQueueUpdated(streamID string, item *model.QueueItem) {
	s.bus.Publish(events.Event{
		Type:     events.QueueUpdated,
		StreamID: streamID,
		Item:     item,
		At:       s.now(),
	})
}
