package payment

import (
	"net/url"
	"strings"
	"testing"
)

func testClient() *Client {
	return NewClient("https://pay.example.com", "1001", "testkey", "https://shop.example.com/api/v1/payment/notify", "https://shop.example.com/api/v1/payment/return")
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		9900:  "99.00",
		10050: "100.50",
		1:     "0.01",
		0:     "0.00",
	}
	for minor, want := range cases {
		if got := FormatAmount(minor); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", minor, got, want)
		}
	}
}

func TestSignDeterministic(t *testing.T) {
	c := testClient()
	params := url.Values{}
	params.Set("pid", "1001")
	params.Set("out_trade_no", "TS20260101000000ABCDEF")
	params.Set("money", "99.00")

	sign1 := c.Sign(params)
	sign2 := c.Sign(params)
	if sign1 != sign2 {
		t.Fatal("sign is not deterministic")
	}
	if len(sign1) != 32 {
		t.Fatalf("expected 32-char md5 hex, got %d chars", len(sign1))
	}
}

func TestSignExcludesSignFields(t *testing.T) {
	c := testClient()
	params := url.Values{}
	params.Set("pid", "1001")
	params.Set("money", "99.00")
	base := c.Sign(params)

	// sign/sign_type 和空值不参与签名
	params.Set("sign", "whatever")
	params.Set("sign_type", "MD5")
	params.Set("empty", "")
	if got := c.Sign(params); got != base {
		t.Fatal("sign/sign_type/empty values must not affect signature")
	}
}

func TestVerifyNotify(t *testing.T) {
	c := testClient()
	params := url.Values{}
	params.Set("pid", "1001")
	params.Set("out_trade_no", "TS1")
	params.Set("trade_status", "TRADE_SUCCESS")
	params.Set("sign", c.Sign(params))

	if !c.VerifyNotify(params) {
		t.Fatal("expected valid signature to verify")
	}

	params.Set("out_trade_no", "TS2")
	if c.VerifyNotify(params) {
		t.Fatal("expected tampered params to fail verification")
	}

	params.Del("sign")
	if c.VerifyNotify(params) {
		t.Fatal("expected missing sign to fail verification")
	}
}

func TestBuildPayURL(t *testing.T) {
	c := testClient()
	payURL := c.BuildPayURL("TS1", "alipay", "标准套餐", 9900)

	if !strings.HasPrefix(payURL, "https://pay.example.com/submit.php?") {
		t.Fatalf("unexpected url prefix: %s", payURL)
	}

	u, err := url.Parse(payURL)
	if err != nil {
		t.Fatalf("parse url failed: %v", err)
	}
	q := u.Query()
	if q.Get("out_trade_no") != "TS1" {
		t.Fatalf("missing out_trade_no: %s", payURL)
	}
	if q.Get("money") != "99.00" {
		t.Fatalf("expected money 99.00, got %q", q.Get("money"))
	}
	if q.Get("sign") == "" {
		t.Fatal("missing sign")
	}

	// 网关侧会按同样规则验签
	if !c.VerifyNotify(q) {
		t.Fatal("generated pay url must carry a valid signature")
	}
}
