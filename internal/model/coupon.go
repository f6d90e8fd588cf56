package model

import (
	"database/sql"
	"time"
)

// 优惠券折扣类型
const (
	DiscountTypeFixed      = "fixed"      // 固定金额
	DiscountTypePercentage = "percentage" // 百分比
)

// Coupon 优惠券模型，金额单位为分
type Coupon struct {
	ID            uint64         `db:"id" json:"id"`
	Code          string         `db:"code" json:"code"` // 统一存储为大写
	DiscountType  string         `db:"discount_type" json:"discount_type"`
	DiscountValue int64          `db:"discount_value" json:"discount_value"` // 固定金额为分，百分比为1-100
	MinAmount     int64          `db:"min_amount" json:"min_amount"`
	MaxDiscount   int64          `db:"max_discount" json:"max_discount"` // 仅百分比类型生效，0表示不封顶
	MaxUses       int            `db:"max_uses" json:"max_uses"`         // 0表示不限次数
	UsedCount     int            `db:"used_count" json:"used_count"`
	ValidFrom     sql.NullTime   `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil    sql.NullTime   `db:"valid_until" json:"valid_until,omitempty"`
	PlanIDs       sql.NullString `db:"plan_ids" json:"plan_ids,omitempty"` // 逗号分隔的适用套餐ID，空表示全部适用
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
