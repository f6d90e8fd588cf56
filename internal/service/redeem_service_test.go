package service

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"teamshop/internal/model"
)

func boundCode(email string, expiresAt time.Time) *model.RedeemCode {
	return &model.RedeemCode{
		Code:         "TESTCODE00000001",
		BoundEmail:   sql.NullString{String: email, Valid: true},
		ValidityDays: 30,
		MaxUses:      1,
		ExpiresAt:    sql.NullTime{Time: expiresAt, Valid: true},
		IsActive:     true,
	}
}

func TestCheckRedeemableBoundConflict(t *testing.T) {
	now := time.Now()
	rc := boundCode("first@example.com", now.Add(24*time.Hour))

	// 已绑定其他邮箱必须拒绝
	if err := checkRedeemable(rc, "second@example.com", now); !errors.Is(err, ErrCodeBoundConflict) {
		t.Fatalf("expected ErrCodeBoundConflict, got %v", err)
	}

	// 绑定邮箱不区分大小写
	if err := checkRedeemable(rc, "FIRST@Example.COM", now); err != nil {
		t.Fatalf("expected bound email to pass case-insensitively, got %v", err)
	}
}

func TestCheckRedeemableRejections(t *testing.T) {
	now := time.Now()

	if err := checkRedeemable(nil, "user@example.com", now); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound for missing code, got %v", err)
	}

	inactive := boundCode("user@example.com", now.Add(24*time.Hour))
	inactive.IsActive = false
	if err := checkRedeemable(inactive, "user@example.com", now); !errors.Is(err, ErrCodeInactive) {
		t.Fatalf("expected ErrCodeInactive, got %v", err)
	}

	expired := boundCode("user@example.com", now.Add(-time.Hour))
	if err := checkRedeemable(expired, "user@example.com", now); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}

	// 未绑定的码无过期时间，对任意邮箱可用
	unbound := &model.RedeemCode{Code: "TESTCODE00000002", ValidityDays: 30, MaxUses: 1, IsActive: true}
	if err := checkRedeemable(unbound, "anyone@example.com", now); err != nil {
		t.Fatalf("expected unbound code to be redeemable, got %v", err)
	}
}

func TestResolveBindRace(t *testing.T) {
	expiresAt := time.Now().Add(30 * 24 * time.Hour)

	// 竞争胜者是其他邮箱，败者按冲突拒绝
	winner := boundCode("winner@example.com", expiresAt)
	if _, err := resolveBindRace(winner, "loser@example.com"); !errors.Is(err, ErrCodeBoundConflict) {
		t.Fatalf("expected ErrCodeBoundConflict for lost race, got %v", err)
	}

	// 码已归本邮箱（同请求重放），沿用胜者写入的过期时间
	got, err := resolveBindRace(winner, "Winner@Example.com")
	if err != nil {
		t.Fatalf("expected same-email race to resolve, got %v", err)
	}
	if !got.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, got)
	}

	if _, err := resolveBindRace(nil, "anyone@example.com"); !errors.Is(err, ErrCodeBoundConflict) {
		t.Fatalf("expected ErrCodeBoundConflict for vanished code, got %v", err)
	}
}

func TestPromotableSkipsExpiredQueuedCodes(t *testing.T) {
	now := time.Now()

	valid := boundCode("user@example.com", now.Add(time.Hour))
	if !promotable(valid, now) {
		t.Fatal("expected valid code to be promotable")
	}

	// 排队期间过期的码不再提升
	expired := boundCode("user@example.com", now.Add(-time.Minute))
	if promotable(expired, now) {
		t.Fatal("expected expired code to be dropped from queue")
	}

	inactive := boundCode("user@example.com", now.Add(time.Hour))
	inactive.IsActive = false
	if promotable(inactive, now) {
		t.Fatal("expected inactive code to be dropped from queue")
	}

	if promotable(nil, now) {
		t.Fatal("expected missing code to be dropped from queue")
	}
}
