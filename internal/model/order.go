package model

import (
	"database/sql"
	"time"
)

// 订单状态
const (
	OrderStatusPending = 0 // 待支付
	OrderStatusPaid    = 1 // 已支付
	OrderStatusExpired = 2 // 已过期
)

// 支付方式
const (
	PayTypeAlipay = "alipay"
	PayTypeWxpay  = "wxpay"
)

// Order 订单模型，金额单位为分
type Order struct {
	ID             uint64         `db:"id" json:"id"`
	OrderNo        string         `db:"order_no" json:"order_no"`
	PlanID         uint64         `db:"plan_id" json:"plan_id"`
	PlanName       string         `db:"plan_name" json:"plan_name"` // 下单时快照
	ValidityDays   int            `db:"validity_days" json:"validity_days"`
	Email          string         `db:"email" json:"email"`
	Amount         int64          `db:"amount" json:"amount"`
	DiscountAmount int64          `db:"discount_amount" json:"discount_amount"`
	FinalAmount    int64          `db:"final_amount" json:"final_amount"`
	CouponCode     sql.NullString `db:"coupon_code" json:"coupon_code,omitempty"`
	PayType        string         `db:"pay_type" json:"pay_type"`
	Status         int            `db:"status" json:"status"` // 0: 待支付, 1: 已支付, 2: 已过期
	RedeemCode     sql.NullString `db:"redeem_code" json:"redeem_code,omitempty"` // 支付成功后写入
	TradeNo        sql.NullString `db:"trade_no" json:"trade_no,omitempty"`       // 支付平台流水号
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
	PaidAt         sql.NullTime   `db:"paid_at" json:"paid_at,omitempty"`
	ExpireAt       time.Time      `db:"expire_at" json:"expire_at"`
}
