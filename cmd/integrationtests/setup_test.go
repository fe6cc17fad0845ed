package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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
)

const testJWTSecret = "integration-test-secret"

var (
	sellerUser  = model.User{UserID: "seller1", Username: "seller", Role: "seller"}
	bidder1User = model.User{UserID: "bidder1", Username: "alice", Role: "bidder"}
	bidder2User = model.User{UserID: "bidder2", Username: "bob", Role: "bidder"}
)

// SetupTestRouter wires the full application over an in-memory repository,
// exactly as main does minus Redis.
func SetupTestRouter() (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	bus := events.NewBus()

	rules := auction.Rules{
		AntiSnipeWindow: 15 * time.Second,
		ExtensionStep:   15 * time.Second,
		MaxExtensions:   10,
	}
	biddingSvc := bidding.NewService(repo, bus, rules)
	streamSvc := stream.NewService(repo, bus, config.AuctionDefaults{
		MinIncrement:    decimal.NewFromInt(1),
		Duration:        time.Minute,
		AntiSnipeWindow: rules.AntiSnipeWindow,
		ExtensionStep:   rules.ExtensionStep,
		MaxExtensions:   rules.MaxExtensions,
	})
	hub := live.NewHub()

	bus.Subscribe(streamSvc.HandleAuctionEvent)
	bus.Subscribe(hub.HandleEvent)

	return server.SetupRouter(biddingSvc, streamSvc, hub, testJWTSecret), repo
}

// TokenFor signs a short-lived JWT for a test user
func TokenFor(t *testing.T, user model.User) string {
	t.Helper()
	token, err := server.IssueToken(testJWTSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// ExecuteRequest executes an authenticated HTTP request and parses the JSON
// envelope. A 2xx response returns the "data" payload, anything else the full
// envelope.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}
	return resp, w
}

// ExecuteRequestList is ExecuteRequest for endpoints whose data is an array
func ExecuteRequestList(t *testing.T, router *gin.Engine, method, url, token string, body any) ([]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp struct {
		Data []any `json:"data"`
	}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp.Data, w
}
