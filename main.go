package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AimalShah/BarterDash-sub004/internal/auction"
	bidding "github.com/AimalShah/BarterDash-sub004/internal/biddingService"
	"github.com/AimalShah/BarterDash-sub004/internal/config"
	"github.com/AimalShah/BarterDash-sub004/internal/events"
	model "github.com/AimalShah/BarterDash-sub004/internal/models"
	"github.com/AimalShah/BarterDash-sub004/internal/repository"
	"github.com/AimalShah/BarterDash-sub004/internal/server"
	stream "github.com/AimalShah/BarterDash-sub004/internal/streamService"
	"github.com/AimalShah/BarterDash-sub004/services/live"
	"github.com/AimalShah/BarterDash-sub004/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	repo := repository.NewMemoryRepo()
	bus := events.NewBus()

	rules := auction.Rules{
		AntiSnipeWindow: cfg.Auction.AntiSnipeWindow,
		ExtensionStep:   cfg.Auction.ExtensionStep,
		MaxExtensions:   cfg.Auction.MaxExtensions,
	}
	biddingSvc := bidding.NewService(repo, bus, rules)
	streamSvc := stream.NewService(repo, bus, cfg.Auction)

	hub := live.NewHub()

	// Subscription order matters: the coordinator settles the queue before
	// viewers and Redis see the event.
	bus.Subscribe(streamSvc.HandleAuctionEvent)
	bus.Subscribe(hub.HandleEvent)

	if cfg.RedisAddr != "" {
		publisher, err := events.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			utils.Fatal("failed to connect to redis", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
		}
		defer publisher.Close()
		bus.Subscribe(publisher.Handle)
	}

	if cfg.SeedDemo {
		seedDemo(streamSvc, cfg.JWTSecret)
	}

	router := server.SetupRouter(biddingSvc, streamSvc, hub, cfg.JWTSecret)

	addr := ":" + cfg.Port
	utils.Info("starting auction server", map[string]any{"addr": addr})
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seedDemo creates a sample stream with a few queued products and prints
// ready-to-use tokens so the API can be exercised immediately.
func seedDemo(streamSvc *stream.Service, jwtSecret string) {
	seller := model.User{UserID: "seller1", Username: "demo-seller", Role: "seller"}
	bidders := []model.User{
		{UserID: "bidder1", Username: "demo-bidder-1", Role: "bidder"},
		{UserID: "bidder2", Username: "demo-bidder-2", Role: "bidder"},
	}

	st, err := streamSvc.CreateStream(seller.UserID, "Friday Night Card Break")
	if err != nil {
		utils.Fatal("failed to seed demo stream", map[string]any{"error": err.Error()})
	}

	reserve := decimal.NewFromInt(50)
	buyout := decimal.NewFromInt(100)
	lots := []struct {
		productID string
		cfg       model.AuctionConfig
	}{
		{"prod-rookie-card", model.AuctionConfig{StartingBid: decimal.NewFromInt(10), MinIncrement: decimal.NewFromInt(5)}},
		{"prod-signed-jersey", model.AuctionConfig{StartingBid: decimal.NewFromInt(25), ReservePrice: &reserve, BuyoutPrice: &buyout}},
		{"prod-vintage-pack", model.AuctionConfig{StartingBid: decimal.NewFromInt(5), Mode: model.ModeSuddenDeath}},
	}
	for _, lot := range lots {
		if _, err := streamSvc.AddQueueItem(seller.UserID, st.StreamID, lot.productID, lot.cfg); err != nil {
			utils.Fatal("failed to seed demo queue", map[string]any{"product_id": lot.productID, "error": err.Error()})
		}
	}

	utils.Info("demo data seeded", map[string]any{"stream_id": st.StreamID})
	for _, user := range append([]model.User{seller}, bidders...) {
		token, err := server.IssueToken(jwtSecret, user, 24*time.Hour)
		if err != nil {
			utils.Fatal("failed to issue demo token", map[string]any{"user_id": user.UserID, "error": err.Error()})
		}
		fmt.Printf("demo token (%s/%s): %s\n", user.UserID, user.Role, token)
	}
}
