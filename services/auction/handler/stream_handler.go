package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/services/auction/helpers"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// StreamService defines the seller-facing queue coordinator operations
type StreamService interface {
	CreateStream(sellerID, title string) (model.Stream, error)
	AddQueueItem(sellerID, streamID, productID string, cfg model.AuctionConfig) (model.QueueItem, error)
	ReorderQueue(sellerID, streamID string, productIDs []string) ([]model.QueueItem, error)
	Pin(sellerID, streamID, productID string) (model.Stream, error)
	StartAuction(sellerID, streamID, productID string) (model.Auction, error)
	EndAuction(sellerID, streamID string) (model.Auction, error)
	MarkSold(sellerID, streamID string) (model.Auction, error)
	MarkPassed(sellerID, streamID string) (model.Auction, error)
	Advance(sellerID, streamID string) (model.QueueItem, error)
	Queue(streamID string) ([]model.QueueItem, error)
	GetStream(streamID string) (model.Stream, error)
}

// StreamHandler handles seller stream and queue requests
type StreamHandler struct {
	service StreamService
}

// NewStreamHandler creates a new stream handler instance
func NewStreamHandler(service StreamService) *StreamHandler {
	return &StreamHandler{service: service}
}

// CreateStreamHandler handles POST /streams
func (h *StreamHandler) CreateStreamHandler(c *gin.Context) {
	const handlerName = "CreateStreamHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.CreateStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	st, err := h.service.CreateStream(user.UserID, req.Title)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "stream created", map[string]any{"stream_id": st.StreamID, "seller_id": user.UserID})
	utils.JSONResponse(c, http.StatusCreated, st, "stream created")
}

// GetStreamHandler handles GET /streams/:stream_id
func (h *StreamHandler) GetStreamHandler(c *gin.Context) {
	st, err := h.service.GetStream(c.Param("stream_id"))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, st, "stream retrieved")
}

// AddQueueItemHandler handles POST /streams/:stream_id/queue
func (h *StreamHandler) AddQueueItemHandler(c *gin.Context) {
	const handlerName = "AddQueueItemHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.AddQueueItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	cfg := model.AuctionConfig{
		StartingBid:  req.StartingBid,
		MinIncrement: req.MinIncrement,
		Duration:     time.Duration(req.DurationSeconds) * time.Second,
		Mode:         model.AuctionMode(req.Mode),
		ReservePrice: req.ReservePrice,
		BuyoutPrice:  req.BuyoutPrice,
	}
	item, err := h.service.AddQueueItem(user.UserID, c.Param("stream_id"), req.ProductID, cfg)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "queue item added", map[string]any{
		"stream_id":  item.StreamID,
		"product_id": item.ProductID,
	})
	utils.JSONResponse(c, http.StatusCreated, item, "queue item added")
}

// ReorderQueueHandler handles PUT /streams/:stream_id/queue/order
func (h *StreamHandler) ReorderQueueHandler(c *gin.Context) {
	const handlerName = "ReorderQueueHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.ReorderQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	queue, err := h.service.ReorderQueue(user.UserID, c.Param("stream_id"), req.ProductIDs)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, queue, "queue reordered")
}

// GetQueueHandler handles GET /streams/:stream_id/queue
func (h *StreamHandler) GetQueueHandler(c *gin.Context) {
	queue, err := h.service.Queue(c.Param("stream_id"))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, queue, "queue retrieved")
}

// PinHandler handles POST /streams/:stream_id/pin
func (h *StreamHandler) PinHandler(c *gin.Context) {
	const handlerName = "PinHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	st, err := h.service.Pin(user.UserID, c.Param("stream_id"), req.ProductID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, st, "product pinned")
}

// StartAuctionHandler handles POST /streams/:stream_id/auction/start
func (h *StreamHandler) StartAuctionHandler(c *gin.Context) {
	const handlerName = "StartAuctionHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	var req helpers.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}

	a, err := h.service.StartAuction(user.UserID, c.Param("stream_id"), req.ProductID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "auction started", map[string]any{
		"stream_id":  a.StreamID,
		"auction_id": a.AuctionID,
		"product_id": a.ProductID,
	})
	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(a), "auction started")
}

// EndAuctionHandler handles POST /streams/:stream_id/auction/end
func (h *StreamHandler) EndAuctionHandler(c *gin.Context) {
	h.settle(c, "EndAuctionHandler", "auction ended", h.service.EndAuction)
}

// MarkSoldHandler handles POST /streams/:stream_id/auction/sold
func (h *StreamHandler) MarkSoldHandler(c *gin.Context) {
	h.settle(c, "MarkSoldHandler", "auction settled as sold", h.service.MarkSold)
}

// MarkPassedHandler handles POST /streams/:stream_id/auction/passed
func (h *StreamHandler) MarkPassedHandler(c *gin.Context) {
	h.settle(c, "MarkPassedHandler", "auction settled as passed", h.service.MarkPassed)
}

// settle is the shared shape of the three lifecycle endpoints that take no body
func (h *StreamHandler) settle(c *gin.Context, handlerName, message string, op func(sellerID, streamID string) (model.Auction, error)) {
	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	a, err := op(user.UserID, c.Param("stream_id"))
	if err != nil {
		status, msg := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, msg)
		return
	}

	helpers.LogSuccess(handlerName, message, map[string]any{
		"stream_id":  a.StreamID,
		"auction_id": a.AuctionID,
		"status":     string(a.Status),
	})
	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), message)
}

// AdvanceHandler handles POST /streams/:stream_id/advance
func (h *StreamHandler) AdvanceHandler(c *gin.Context) {
	const handlerName = "AdvanceHandler"

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, nil, "authentication required")
		return
	}

	item, err := h.service.Advance(user.UserID, c.Param("stream_id"))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		return
	}

	helpers.LogSuccess(handlerName, "queue advanced", map[string]any{
		"stream_id":  item.StreamID,
		"product_id": item.ProductID,
	})
	utils.JSONResponse(c, http.StatusOK, item, "queue advanced")
}
