package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"teamshop/internal/types"
	"teamshop/pkg/logger"
	"teamshop/pkg/payment"

	"github.com/gin-gonic/gin"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error")
}

func setupRedeemRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRedeemHandler(nil, nil, testLogger())
	r.POST("/redeem", h.DirectRedeem)
	r.GET("/redeem/status", h.Status)
	r.POST("/redeem/rebind", h.Rebind)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return body
}

func TestDirectRedeemMissingParams(t *testing.T) {
	r := setupRedeemRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/redeem", strings.NewReader(`{"email":"user@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected http 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400, got %v", body["code"])
	}
}

func TestRedeemStatusRequiresCodeOrEmail(t *testing.T) {
	r := setupRedeemRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/redeem/status", nil)
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400, got %v", body["code"])
	}
}

func TestRebindMissingCode(t *testing.T) {
	r := setupRedeemRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/redeem/rebind", strings.NewReader(`{"email":"user@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400, got %v", body["code"])
	}
}

func TestCreateOrderRejectsBadPayType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrderHandler(nil, testLogger())
	r.POST("/orders", h.CreateOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"plan_id":1,"email":"user@example.com","pay_type":"paypal"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400 for unsupported pay type, got %v", body["code"])
	}
}

func TestGetOrdersByEmailRejectsBadEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrderHandler(nil, testLogger())
	r.GET("/orders", h.GetOrdersByEmail)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?email=not-an-email", nil)
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400, got %v", body["code"])
	}
}

func TestCouponCheckMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCouponHandler(nil, nil, testLogger())
	r.POST("/coupons/check", h.CheckCoupon)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coupons/check", strings.NewReader(`{"code":"SAVE20"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if body["code"].(float64) != 400 {
		t.Fatalf("expected app code 400, got %v", body["code"])
	}
}

func TestRenderOutcomeQueuedShape(t *testing.T) {
	out := renderOutcome(&types.RedeemOutcome{
		Queued: &types.RedeemQueued{QueuePosition: 3},
	})

	if out["state"] != types.RedeemStateWaitingForSeat {
		t.Fatalf("expected state %s, got %v", types.RedeemStateWaitingForSeat, out["state"])
	}
	position, ok := out["queue_position"].(int)
	if !ok || position <= 0 {
		t.Fatalf("expected positive queue_position, got %v", out["queue_position"])
	}

	// 排队响应不得携带激活成功的字段
	for _, key := range []string{"team_name", "expires_at", "remaining_days", "is_first_use"} {
		if _, exists := out[key]; exists {
			t.Fatalf("queued outcome must not carry %q", key)
		}
	}
}

func TestRenderOutcomeActivatedShape(t *testing.T) {
	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	out := renderOutcome(&types.RedeemOutcome{
		Activated: &types.RedeemActivated{
			TeamName:      "Team-01",
			ExpiresAt:     expiresAt,
			RemainingDays: 30,
			IsFirstUse:    true,
		},
	})

	if out["state"] != "ACTIVATED" {
		t.Fatalf("expected state ACTIVATED, got %v", out["state"])
	}
	if out["team_name"] != "Team-01" {
		t.Fatalf("expected team_name Team-01, got %v", out["team_name"])
	}
	if out["is_first_use"] != true {
		t.Fatalf("expected is_first_use true, got %v", out["is_first_use"])
	}
	if _, exists := out["queue_position"]; exists {
		t.Fatal("activated outcome must not carry queue_position")
	}
}

func TestPaymentNotifyRejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	payClient := payment.NewClient("https://pay.example.com", "1001", "testkey", "", "")
	h := NewPaymentHandler(nil, payClient, testLogger())
	r.GET("/payment/notify", h.Notify)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/notify?out_trade_no=TS1&trade_status=TRADE_SUCCESS&sign=bogus", nil)
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected http 200, got %d", w.Code)
	}
	if w.Body.String() != "fail" {
		t.Fatalf("expected body fail, got %q", w.Body.String())
	}
}

func TestPaymentNotifyIgnoresNonSuccessStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	payClient := payment.NewClient("https://pay.example.com", "1001", "testkey", "", "")
	h := NewPaymentHandler(nil, payClient, testLogger())
	r.GET("/payment/notify", h.Notify)

	// 合法签名但交易状态非成功，应直接应答success且不触发发货
	params := url.Values{}
	params.Set("pid", "1001")
	params.Set("out_trade_no", "TS1")
	params.Set("trade_status", "TRADE_CLOSED")
	params.Set("sign", payClient.Sign(params))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/notify?"+params.Encode(), nil)
	r.ServeHTTP(w, req)

	if w.Body.String() != "success" {
		t.Fatalf("expected body success, got %q", w.Body.String())
	}
}
