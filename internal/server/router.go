package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bidding "github.com/AimalShah/BarterDash-sub004/internal/biddingService"
	stream "github.com/AimalShah/BarterDash-sub004/internal/streamService"
	handler "github.com/AimalShah/BarterDash-sub004/services/auction/handler"
	"github.com/AimalShah/BarterDash-sub004/services/live"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.Service, streamService *stream.Service, hub *live.Hub, jwtSecret string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(biddingService)
	streamHandler := handler.NewStreamHandler(streamService)

	router.GET("/healthz", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, nil, "ok")
	})

	authed := router.Group("", AuthMiddleware(jwtSecret))

	auctions := authed.Group("/auctions")
	{
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/autobids", auctionHandler.GetAutoBidsHandler)
		auctions.POST("/:auction_id/autobids", auctionHandler.SetAutoBidHandler)
	}

	streams := authed.Group("/streams")
	{
		streams.POST("", RequireRole("seller"), streamHandler.CreateStreamHandler)
		streams.GET("/:stream_id", streamHandler.GetStreamHandler)
		streams.GET("/:stream_id/queue", streamHandler.GetQueueHandler)

		seller := streams.Group("/:stream_id", RequireRole("seller"))
		{
			seller.POST("/queue", streamHandler.AddQueueItemHandler)
			seller.PUT("/queue/order", streamHandler.ReorderQueueHandler)
			seller.POST("/pin", streamHandler.PinHandler)
			seller.POST("/auction/start", streamHandler.StartAuctionHandler)
			seller.POST("/auction/end", streamHandler.EndAuctionHandler)
			seller.POST("/auction/sold", streamHandler.MarkSoldHandler)
			seller.POST("/auction/passed", streamHandler.MarkPassedHandler)
			seller.POST("/advance", streamHandler.AdvanceHandler)
		}
	}

	authed.GET("/ws/streams/:stream_id", hub.ServeWS)

	return router
}
