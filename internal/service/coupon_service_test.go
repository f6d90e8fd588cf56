package service

import (
	"database/sql"
	"testing"
	"time"

	"teamshop/internal/constants"
	"teamshop/internal/model"
)

func fixedCoupon(value int64) *model.Coupon {
	return &model.Coupon{
		Code:          "SAVE20",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: value,
		IsActive:      true,
	}
}

func percentageCoupon(percent, maxDiscount int64) *model.Coupon {
	return &model.Coupon{
		Code:          "PCT20",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: percent,
		MaxDiscount:   maxDiscount,
		IsActive:      true,
	}
}

func TestComputeDiscountFixed(t *testing.T) {
	// 9900 - 2000 = 7900
	got := ComputeDiscount(fixedCoupon(2000), 9900)
	if got != 2000 {
		t.Fatalf("expected discount 2000, got %d", got)
	}
}

func TestComputeDiscountFixedClampedToAmount(t *testing.T) {
	// 固定金额超过订单金额时按订单金额封顶
	got := ComputeDiscount(fixedCoupon(2000), 1500)
	if got != 1500 {
		t.Fatalf("expected discount 1500, got %d", got)
	}
}

func TestComputeDiscountPercentage(t *testing.T) {
	// 10000 * 20% = 2000，封顶1500
	got := ComputeDiscount(percentageCoupon(20, 1500), 10000)
	if got != 1500 {
		t.Fatalf("expected discount 1500, got %d", got)
	}
}

func TestComputeDiscountPercentageNoCap(t *testing.T) {
	// max_discount=0 表示不封顶
	got := ComputeDiscount(percentageCoupon(20, 0), 10000)
	if got != 2000 {
		t.Fatalf("expected discount 2000, got %d", got)
	}
}

func TestComputeDiscountUnknownType(t *testing.T) {
	coupon := &model.Coupon{DiscountType: "weird", DiscountValue: 100, IsActive: true}
	if got := ComputeDiscount(coupon, 10000); got != 0 {
		t.Fatalf("expected discount 0, got %d", got)
	}
}

func TestValidateCouponInactive(t *testing.T) {
	coupon := fixedCoupon(2000)
	coupon.IsActive = false
	if msg := ValidateCoupon(coupon, 1, 9900, time.Now()); msg != constants.ErrCouponInactive {
		t.Fatalf("expected %q, got %q", constants.ErrCouponInactive, msg)
	}
}

func TestValidateCouponTimeWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	coupon := fixedCoupon(2000)
	coupon.ValidFrom = sql.NullTime{Time: now.Add(time.Hour), Valid: true}
	if msg := ValidateCoupon(coupon, 1, 9900, now); msg != constants.ErrCouponExpired {
		t.Fatalf("before window: expected %q, got %q", constants.ErrCouponExpired, msg)
	}

	coupon = fixedCoupon(2000)
	coupon.ValidUntil = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}
	if msg := ValidateCoupon(coupon, 1, 9900, now); msg != constants.ErrCouponExpired {
		t.Fatalf("after window: expected %q, got %q", constants.ErrCouponExpired, msg)
	}

	coupon = fixedCoupon(2000)
	coupon.ValidFrom = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}
	coupon.ValidUntil = sql.NullTime{Time: now.Add(time.Hour), Valid: true}
	if msg := ValidateCoupon(coupon, 1, 9900, now); msg != "" {
		t.Fatalf("inside window: expected valid, got %q", msg)
	}
}

func TestValidateCouponExhausted(t *testing.T) {
	coupon := fixedCoupon(2000)
	coupon.MaxUses = 5
	coupon.UsedCount = 5
	if msg := ValidateCoupon(coupon, 1, 9900, time.Now()); msg != constants.ErrCouponExhausted {
		t.Fatalf("expected %q, got %q", constants.ErrCouponExhausted, msg)
	}

	// max_uses=0 表示不限次数
	coupon.MaxUses = 0
	coupon.UsedCount = 9999
	if msg := ValidateCoupon(coupon, 1, 9900, time.Now()); msg != "" {
		t.Fatalf("unlimited: expected valid, got %q", msg)
	}
}

func TestValidateCouponMinAmount(t *testing.T) {
	coupon := fixedCoupon(2000)
	coupon.MinAmount = 5000
	if msg := ValidateCoupon(coupon, 1, 4999, time.Now()); msg != constants.ErrCouponMinAmount {
		t.Fatalf("expected %q, got %q", constants.ErrCouponMinAmount, msg)
	}
	if msg := ValidateCoupon(coupon, 1, 5000, time.Now()); msg != "" {
		t.Fatalf("at threshold: expected valid, got %q", msg)
	}
}

func TestValidateCouponPlanScope(t *testing.T) {
	coupon := fixedCoupon(2000)
	coupon.PlanIDs = sql.NullString{String: "1, 3", Valid: true}

	if msg := ValidateCoupon(coupon, 2, 9900, time.Now()); msg != constants.ErrCouponPlanScope {
		t.Fatalf("expected %q, got %q", constants.ErrCouponPlanScope, msg)
	}
	if msg := ValidateCoupon(coupon, 3, 9900, time.Now()); msg != "" {
		t.Fatalf("in scope: expected valid, got %q", msg)
	}

	// 适用集合为空表示全部套餐可用
	coupon.PlanIDs = sql.NullString{}
	if msg := ValidateCoupon(coupon, 99, 9900, time.Now()); msg != "" {
		t.Fatalf("empty scope: expected valid, got %q", msg)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.cn"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "user", "user@", "@example.com", "user @example.com", "user@example"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
