package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestRedeemCodeIsBound(t *testing.T) {
	code := &RedeemCode{}
	if code.IsBound() {
		t.Fatal("fresh code must not be bound")
	}

	code.BoundEmail = sql.NullString{String: "user@example.com", Valid: true}
	if !code.IsBound() {
		t.Fatal("expected bound after email set")
	}
}

func TestRedeemCodeIsExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// 未绑定的码没有过期时间
	code := &RedeemCode{ValidityDays: 30}
	if code.IsExpired(now) {
		t.Fatal("unbound code must not be expired")
	}

	code.ExpiresAt = sql.NullTime{Time: now.Add(-time.Minute), Valid: true}
	if !code.IsExpired(now) {
		t.Fatal("expected expired")
	}

	code.ExpiresAt = sql.NullTime{Time: now.Add(time.Minute), Valid: true}
	if code.IsExpired(now) {
		t.Fatal("expected not expired")
	}
}

func TestRedeemCodeRemainingDays(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// 未绑定时返回有效期总天数
	code := &RedeemCode{ValidityDays: 30}
	if got := code.RemainingDays(now); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}

	// 不足一天按一天计
	code.ExpiresAt = sql.NullTime{Time: now.Add(time.Hour), Valid: true}
	if got := code.RemainingDays(now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	code.ExpiresAt = sql.NullTime{Time: now.Add(30 * 24 * time.Hour), Valid: true}
	if got := code.RemainingDays(now); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}

	code.ExpiresAt = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}
	if got := code.RemainingDays(now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
