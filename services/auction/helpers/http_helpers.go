package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AimalShah/BarterDash-sub004/internal/auctionerrors"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// IdentityKey is where the auth middleware stores the caller on the context
const IdentityKey = "identity"

// CurrentUser pulls the authenticated caller off the request context
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrStreamNotFound):
		return http.StatusNotFound, "stream not found"
	case errors.Is(err, auctionerrors.ErrQueueItemNotFound):
		return http.StatusNotFound, "queue item not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidQueueOp):
		return http.StatusBadRequest, "invalid queue operation"
	case errors.Is(err, auctionerrors.ErrNotSeller):
		return http.StatusForbidden, "not the stream owner"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAlreadyHighBidder):
		return http.StatusConflict, "you already hold the high bid"
	case errors.Is(err, auctionerrors.ErrBidSuperseded):
		return http.StatusConflict, "someone just outbid you - try a higher amount"
	case errors.Is(err, auctionerrors.ErrAuctionAlreadyActive):
		return http.StatusConflict, "an auction is already running on this stream"
	case errors.Is(err, auctionerrors.ErrReserveNotMet):
		return http.StatusConflict, "reserve price not met"
	case errors.Is(err, auctionerrors.ErrNoWinningBid):
		return http.StatusConflict, "no winning bid exists"
	case errors.Is(err, auctionerrors.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, "persistence unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// NewBidResponse converts a ledger row into its wire form
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		Outcome:   string(bid.Outcome),
		Source:    string(bid.Source),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewAuctionResponse converts an auction snapshot into its wire form
func NewAuctionResponse(a model.Auction) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:      a.AuctionID,
		ProductID:      a.ProductID,
		StreamID:       a.StreamID,
		Status:         string(a.Status),
		Mode:           string(a.Mode),
		CurrentBid:     a.CurrentBid,
		BidCount:       a.BidCount,
		MinIncrement:   a.MinIncrement,
		EndsAt:         a.EndsAt.UTC().Format(time.RFC3339),
		ExtensionCount: a.ExtensionCount,
	}
	if a.CurrentBidderID != nil {
		resp.CurrentBidderID = *a.CurrentBidderID
	}
	return resp
}
