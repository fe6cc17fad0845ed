package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	bidding "github.com/AimalShah/BarterDash-sub004/internal/biddingService"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/services/auction/helpers"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// BiddingService defines the bid acceptor operations the handler depends on
type BiddingService interface {
	PlaceBid(auctionID, bidderID string, amount decimal.Decimal) (bidding.Result, error)
	SetAutoBid(auctionID, bidderID string, ceiling decimal.Decimal) (model.AutoBid, error)
	GetAuction(auctionID string) (model.Auction, error)
	GetBidsForAuction(auctionID string) ([]model.Bid, error)
	GetAutoBidsForAuction(auctionID string) ([]model.AutoBid, error)
}

// AuctionHandler handles bidder-facing auction requests
type AuctionHandler struct {
	service BiddingService
}

// NewAuctionHandler creates a new auction handler instance
func NewAuctionHandler(service BiddingService) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	const handlerName = "PlaceBidHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	auctionID := c.Param("auction_id")
	res, err := h.service.PlaceBid(auctionID, user.UserID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "bid accepted", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  user.UserID,
		"amount":     req.Amount.String(),
		"buyout":     res.Buyout,
	})
	utils.JSONResponse(c, http.StatusCreated, helpers.PlaceBidResponse{
		Bid:      helpers.NewBidResponse(res.Bid),
		Auction:  helpers.NewAuctionResponse(res.Auction),
		Extended: res.Extended,
		Buyout:   res.Buyout,
	}, "bid accepted")
}

// SetAutoBidHandler handles POST /auctions/:auction_id/autobids
func (h *AuctionHandler) SetAutoBidHandler(c *gin.Context) {
	const handlerName = "SetAutoBidHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.SetAutoBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	auctionID := c.Param("auction_id")
	rule, err := h.service.SetAutoBid(auctionID, user.UserID, req.Ceiling)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "auto-bid rule saved", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  user.UserID,
		"ceiling":    req.Ceiling.String(),
	})
	utils.JSONResponse(c, http.StatusCreated, rule, "auto-bid rule saved")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	a, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction retrieved")
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	bids, err := h.service.GetBidsForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	out := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, helpers.NewBidResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, out, "bids retrieved")
}

// GetAutoBidsHandler handles GET /auctions/:auction_id/autobids
func (h *AuctionHandler) GetAutoBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	rules, err := h.service.GetAutoBidsForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, rules, "auto-bid rules retrieved")
}
