package service

import (
	"database/sql"
	"testing"

	"teamshop/internal/model"
)

func pendingOrder(couponCode string) *model.Order {
	order := &model.Order{
		OrderNo: "TS20260831000000ABCDEF",
		Status:  model.OrderStatusPending,
	}
	if couponCode != "" {
		order.CouponCode = sql.NullString{String: couponCode, Valid: true}
	}
	return order
}

func TestCouponMatches(t *testing.T) {
	// 均无优惠码时复用
	if !couponMatches(pendingOrder(""), "") {
		t.Fatal("expected orders without coupons to match")
	}

	// 同一优惠码不区分大小写
	if !couponMatches(pendingOrder("SAVE20"), "save20") {
		t.Fatal("expected same coupon to match case-insensitively")
	}

	// 新请求携带了待支付订单没有的优惠码，必须重新计价下单
	if couponMatches(pendingOrder(""), "SAVE20") {
		t.Fatal("expected new coupon on resubmission to break coalescing")
	}

	// 新请求去掉了优惠码同样视为价格变化
	if couponMatches(pendingOrder("SAVE20"), "") {
		t.Fatal("expected dropped coupon on resubmission to break coalescing")
	}

	if couponMatches(pendingOrder("SAVE20"), "SAVE30") {
		t.Fatal("expected different coupons not to match")
	}
}
